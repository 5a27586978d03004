package maplib

import "sync"

// DefaultScriptID is the id of the script element the page declares for the
// maps library.
const DefaultScriptID = "google-maps-script"

// ScriptTag stands for the page's pre-declared script element. The page is
// rendered with whatever Src holds at the time.
type ScriptTag struct {
	ID string

	mu     sync.RWMutex
	src    string
	writes int
}

func NewScriptTag(id string) *ScriptTag {
	return &ScriptTag{ID: id}
}

func (t *ScriptTag) Src() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.src
}

func (t *ScriptTag) SetSrc(src string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.src = src
	t.writes++
}

// Writes reports how many times the src attribute has been set.
func (t *ScriptTag) Writes() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.writes
}
