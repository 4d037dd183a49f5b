package notefield

// BoxEventType identifies a text box lifecycle change.
type BoxEventType uint8

const (
	BoxCreated BoxEventType = iota // a box was added to the registry
	BoxUpdated                     // committed text changed
	BoxDeleted                     // a box was removed
	BoxFocused                     // a box gained keyboard focus
	BoxBlurred                     // a box lost keyboard focus
)

// String returns a short lowercase name for logs.
func (t BoxEventType) String() string {
	switch t {
	case BoxCreated:
		return "created"
	case BoxUpdated:
		return "updated"
	case BoxDeleted:
		return "deleted"
	case BoxFocused:
		return "focused"
	case BoxBlurred:
		return "blurred"
	default:
		return "unknown"
	}
}

// BoxEvent carries a snapshot of the box at the time of the change.
type BoxEvent struct {
	Type BoxEventType
	ID   string
	X, Y float64
	Text string
}

// EventSink receives box lifecycle events. Set one on a Board with
// SetEventSink; see the ecs package for a Donburi-backed sink.
type EventSink interface {
	EmitEvent(event BoxEvent)
}

// SetEventSink sets the optional lifecycle event sink.
func (b *Board) SetEventSink(sink EventSink) {
	b.sink = sink
}

func (b *Board) emit(t BoxEventType, obj TextBoxObject) {
	if b.sink == nil {
		return
	}
	b.sink.EmitEvent(BoxEvent{Type: t, ID: obj.ID, X: obj.X, Y: obj.Y, Text: obj.Text})
}
