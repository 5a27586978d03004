package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manzanit0/addressmap/pkg/apperr"
	"github.com/manzanit0/addressmap/pkg/mapview"
)

type LookupRequest struct {
	Address string `form:"address"`
}

type LookupResponse struct {
	FormattedAddress string           `json:"formatted_address,omitempty"`
	Map              *mapview.MapView `json:"map"`
	Marker           *mapview.Marker  `json:"marker"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Lookup handles GET /api/v1/geocode?address=... with the same pipeline the
// form uses.
func (fc *FormController) Lookup(c *gin.Context) {
	if fc.State() != stateReady {
		sendError(c, apperr.Load(nil))
		return
	}

	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: apperr.KindUnknown.String()})
		return
	}

	ctx := c.Request.Context()

	res, err := fc.resolve(ctx, req.Address)
	if err != nil {
		logFailure(ctx, "lookup failed", err, "address", req.Address)
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, LookupResponse{
		FormattedAddress: res.location.FormattedAddress,
		Map:              res.view,
		Marker:           res.marker,
	})
}

func sendError(c *gin.Context, err error) {
	e := apperr.As(err)
	c.JSON(e.HTTPStatus(), ErrorResponse{Error: e.Message, Kind: e.Kind.String()})
}
