package notefield

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// scriptSchema is the JSON schema a session script must satisfy.
const scriptSchema = `{
  "type": "object",
  "required": ["steps"],
  "properties": {
    "steps": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["action"],
        "properties": {
          "action": {"enum": ["click", "drag", "type", "key", "wheel", "wait", "screenshot"]},
          "label":  {"type": "string"},
          "x":      {"type": "number"},
          "y":      {"type": "number"},
          "fromX":  {"type": "number"},
          "fromY":  {"type": "number"},
          "toX":    {"type": "number"},
          "toY":    {"type": "number"},
          "frames": {"type": "integer", "minimum": 0},
          "button": {"enum": ["left", "right", "middle"]},
          "text":   {"type": "string"},
          "key":    {"type": "string"},
          "mods":   {"type": "array", "items": {"enum": ["shift", "ctrl", "alt", "meta"]}},
          "dy":     {"type": "number"}
        }
      }
    }
  }
}`

// scriptStep is a single action in a session script.
type scriptStep struct {
	Action string   `json:"action"`
	Label  string   `json:"label,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Button string   `json:"button,omitempty"`
	Text   string   `json:"text,omitempty"`
	Key    string   `json:"key,omitempty"`
	Mods   []string `json:"mods,omitempty"`
	DY     float64  `json:"dy,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input and screenshots across frames for
// automated sessions. Attach to a Board via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript validates and parses a JSON session script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(scriptSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("parse script: %s", strings.Join(msgs, "; "))
	}

	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, st := range s.Steps {
		if st.Action == "key" && ParseKey(st.Key) == KeyUnknown {
			return nil, fmt.Errorf("parse script: step %d: unknown key %q", i, st.Key)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a runner. Its step method is called from
// Board.Update before input is processed each frame.
func (b *Board) SetScriptRunner(r *ScriptRunner) {
	b.runner = r
}

// Done reports whether every step has been executed and drained.
func (r *ScriptRunner) Done() bool {
	return r.done
}

func parseButton(name string) MouseButton {
	switch name {
	case "right":
		return MouseButtonRight
	case "middle":
		return MouseButtonMiddle
	default:
		return MouseButtonLeft
	}
}

func parseMods(names []string) KeyModifiers {
	var m KeyModifiers
	for _, n := range names {
		switch n {
		case "shift":
			m |= ModShift
		case "ctrl":
			m |= ModCtrl
		case "alt":
			m |= ModAlt
		case "meta":
			m |= ModMeta
		}
	}
	return m
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(b *Board) {
	if r.done {
		return
	}
	// Let pending injections drain before advancing.
	if len(b.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		b.Screenshot(st.Label)
	case "click":
		btn := parseButton(st.Button)
		b.InjectPress(st.X, st.Y, btn)
		b.InjectRelease(st.X, st.Y, btn)
	case "drag":
		b.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, parseButton(st.Button))
	case "type":
		b.InjectText(st.Text)
	case "key":
		b.InjectKey(ParseKey(st.Key), parseMods(st.Mods))
	case "wheel":
		b.InjectWheel(st.X, st.Y, st.DY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(b.injectQueue) == 0 {
		r.done = true
	}
}
