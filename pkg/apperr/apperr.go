// Package apperr holds the error kinds a search can fail with. Handlers switch
// on the Kind to decide what the user sees and which HTTP status to answer with.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindUnknown is anything that did not come out of this package.
	KindUnknown Kind = iota
	// KindLoad means the maps library could not be loaded.
	KindLoad
	// KindGeocode means the geocoding request failed or the provider
	// answered with a non-success status.
	KindGeocode
	// KindMalformedResponse means the provider reported success but the
	// payload can't be used, e.g. an empty result list.
	KindMalformedResponse
)

const (
	MsgLoadFailed      = "Failed to load Google Maps API"
	MsgGeocodeFailed   = "Could not fetch location!"
	MsgNoCoordinates   = "No coordinates returned for that address!"
	MsgUnexpectedError = "Something went wrong, please try again."
	MsgLoadFailedAlert = "Failed to load Google Maps API. Please check your API key."
)

func (k Kind) String() string {
	switch k {
	case KindLoad:
		return "load_error"
	case KindGeocode:
		return "geocode_error"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Op      string // operation that failed, optional
	Err     error  // underlying cause, optional

	// Upstream is set when the remote service could not be reached or
	// answered with a transport-level failure.
	Upstream bool
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindLoad:
		return http.StatusServiceUnavailable
	case KindGeocode:
		if e.Upstream {
			return http.StatusBadGateway
		}
		return http.StatusNotFound
	case KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Load(err error) *Error {
	return &Error{Kind: KindLoad, Message: MsgLoadFailed, Err: err, Upstream: true}
}

func Geocode(err error) *Error {
	return &Error{Kind: KindGeocode, Message: MsgGeocodeFailed, Err: err}
}

func GeocodeUpstream(err error) *Error {
	return &Error{Kind: KindGeocode, Message: MsgGeocodeFailed, Err: err, Upstream: true}
}

func MalformedResponse(err error) *Error {
	return &Error{Kind: KindMalformedResponse, Message: MsgNoCoordinates, Err: err}
}

// As returns the *Error in err's chain. Errors that don't carry one are
// reported as KindUnknown with a generic message so callers always get
// something they can show.
func As(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{Kind: KindUnknown, Message: MsgUnexpectedError, Err: err}
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
