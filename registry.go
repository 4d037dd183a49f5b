package notefield

import (
	"strings"

	"github.com/google/uuid"
)

// TextBoxObject is a free-floating text box anchored at its top-left corner
// in canvas space.
type TextBoxObject struct {
	ID   string
	X, Y float64
	Text string
}

// IDGenerator produces text box ids.
type IDGenerator interface {
	NewID() string
}

// uuidIDs builds ids from UUIDv7: a millisecond timestamp followed by random
// bits, so ids created in the same tick still differ.
type uuidIDs struct{}

func (uuidIDs) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "tb-" + id.String()
}

type registryEntry struct {
	obj TextBoxObject
	// newlyCreated suppresses delete-on-blur until the first blur or edit.
	newlyCreated bool
}

// Registry is the ordered, keyed collection of text boxes. It is the sole
// owner of TextBoxObject values; callers receive copies.
type Registry struct {
	ids       IDGenerator
	order     []string
	entries   map[string]*registryEntry
	autoFocus string
}

// NewRegistry creates an empty registry. A nil ids uses UUIDv7-based ids.
func NewRegistry(ids IDGenerator) *Registry {
	if ids == nil {
		ids = uuidIDs{}
	}
	return &Registry{
		ids:     ids,
		entries: make(map[string]*registryEntry),
	}
}

// Create inserts an empty box at the canvas position, marks it newly
// created and makes it the auto-focus target. Returns its id.
func (r *Registry) Create(x, y float64) string {
	id := r.ids.NewID()
	for r.taken(id) {
		id = r.ids.NewID()
	}
	r.entries[id] = &registryEntry{
		obj:          TextBoxObject{ID: id, X: x, Y: y},
		newlyCreated: true,
	}
	r.order = append(r.order, id)
	r.autoFocus = id
	return id
}

func (r *Registry) taken(id string) bool {
	_, ok := r.entries[id]
	return ok || id == ""
}

// UpdateText replaces the text of a box. Reports false for an unknown id.
func (r *Registry) UpdateText(id, text string) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	e.obj.Text = text
	return true
}

// Delete removes a box. Reports false for an unknown id.
func (r *Registry) Delete(id string) bool {
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.autoFocus == id {
		r.autoFocus = ""
	}
	return true
}

// Blur applies delete-on-blur: a box whose trimmed text is empty is
// deleted unless it is still newly created. The first blur clears the
// newly-created flag. Reports whether the box was deleted.
func (r *Registry) Blur(id string) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	if e.newlyCreated {
		e.newlyCreated = false
		return false
	}
	if strings.TrimSpace(e.obj.Text) != "" {
		return false
	}
	return r.Delete(id)
}

// Get returns a copy of a box.
func (r *Registry) Get(id string) (TextBoxObject, bool) {
	e, ok := r.entries[id]
	if !ok {
		return TextBoxObject{}, false
	}
	return e.obj, true
}

// Len returns the number of boxes.
func (r *Registry) Len() int {
	return len(r.order)
}

// Boxes returns copies of all boxes in creation order.
func (r *Registry) Boxes() []TextBoxObject {
	out := make([]TextBoxObject, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].obj)
	}
	return out
}

// IDs returns the box ids in creation order. The returned slice MUST NOT be
// mutated.
func (r *Registry) IDs() []string {
	return r.order
}

// IsNewlyCreated reports whether the box still has its grace flag.
func (r *Registry) IsNewlyCreated(id string) bool {
	e, ok := r.entries[id]
	return ok && e.newlyCreated
}

// ClearNewlyCreated drops the grace flag, e.g. after the first edit.
func (r *Registry) ClearNewlyCreated(id string) {
	if e, ok := r.entries[id]; ok {
		e.newlyCreated = false
	}
}

// AutoFocusTarget returns the id that should receive focus next, or "".
func (r *Registry) AutoFocusTarget() string {
	return r.autoFocus
}

// ClearAutoFocus forgets the auto-focus target.
func (r *Registry) ClearAutoFocus() {
	r.autoFocus = ""
}
