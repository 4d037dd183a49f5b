package notefield

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/exp/textinput"
)

func TestTranslateTextInputStates(t *testing.T) {
	tests := []struct {
		name   string
		states []textinput.State
		want   []Event
	}{
		{
			name:   "plain commit",
			states: []textinput.State{{Text: "a", Committed: true}},
			want:   []Event{{Type: EventTextInput, Text: "a"}},
		},
		{
			name: "composition",
			states: []textinput.State{
				{Text: "に"},
				{Text: "にほ"},
				{Text: "日本", Committed: true},
			},
			want: []Event{
				{Type: EventCompositionStart},
				{Type: EventCompositionUpdate, Text: "に"},
				{Type: EventCompositionUpdate, Text: "にほ"},
				{Type: EventCompositionEnd, Text: "日本"},
			},
		},
		{
			name:   "cancelled composition",
			states: []textinput.State{{Text: "k"}, {Text: ""}},
			want: []Event{
				{Type: EventCompositionStart},
				{Type: EventCompositionUpdate, Text: "k"},
				{Type: EventCompositionEnd},
			},
		},
		{
			name:   "empty state while idle",
			states: []textinput.State{{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newEbitenInput()
			for _, st := range tt.states {
				in.translate(st)
			}
			if len(in.events) != len(tt.want) {
				t.Fatalf("events = %+v, want %+v", in.events, tt.want)
			}
			for i := range tt.want {
				if in.events[i].Type != tt.want[i].Type || in.events[i].Text != tt.want[i].Text {
					t.Errorf("event %d = %+v, want %+v", i, in.events[i], tt.want[i])
				}
			}
			if in.composing {
				t.Error("still composing after the sequence")
			}
		})
	}
}

func TestEndSessionClosesAndResets(t *testing.T) {
	in := newEbitenInput()
	closed := 0
	in.closeFn = func() { closed++ }
	in.composing = true

	in.endSession()
	in.endSession()
	if closed != 1 {
		t.Errorf("close called %d times, want 1", closed)
	}
	if in.composing || in.states != nil {
		t.Error("session state not reset")
	}
}

func TestKeyMapCoversBoardKeys(t *testing.T) {
	tests := map[ebiten.Key]Key{
		ebiten.KeyEnter:       KeyEnter,
		ebiten.KeyNumpadEnter: KeyEnter,
		ebiten.KeyArrowLeft:   KeyLeft,
		ebiten.KeyArrowRight:  KeyRight,
		ebiten.KeyNumpad0:     KeyNumpad0,
		ebiten.KeyF12:         KeyF12,
	}
	for eb, want := range tests {
		if got := keyMap[eb]; got != want {
			t.Errorf("keyMap[%v] = %v, want %v", eb, got, want)
		}
	}
	if _, ok := keyMap[ebiten.KeyA]; ok {
		t.Error("unused key mapped")
	}
}
