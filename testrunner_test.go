package notefield

import (
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "key", "key": "0", "mods": ["ctrl"]},
			{"action": "wheel", "x": 10, "y": 20, "dy": -1}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if parseMods(runner.steps[3].Mods) != ModCtrl {
		t.Error("step 3 mods mismatch")
	}
	if runner.steps[4].DY != -1 {
		t.Error("step 4 dy mismatch")
	}
}

func TestLoadScriptRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"not json", `not json`, "parse script"},
		{"no steps", `{}`, "steps"},
		{"empty steps", `{"steps": []}`, "steps"},
		{"unknown action", `{"steps": [{"action": "fly"}]}`, "action"},
		{"bad button", `{"steps": [{"action": "click", "button": "side"}]}`, "button"},
		{"negative frames", `{"steps": [{"action": "wait", "frames": -1}]}`, "frames"},
		{"unknown key", `{"steps": [{"action": "key", "key": "hyper"}]}`, `unknown key "hyper"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseButton(t *testing.T) {
	tests := map[string]MouseButton{
		"":       MouseButtonLeft,
		"left":   MouseButtonLeft,
		"right":  MouseButtonRight,
		"middle": MouseButtonMiddle,
	}
	for in, want := range tests {
		if got := parseButton(in); got != want {
			t.Errorf("parseButton(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestScriptRunnerClickQueuesPressAndRelease(t *testing.T) {
	b, _ := newTestBoard(t)
	runner, err := LoadScript([]byte(`{"steps": [{"action": "click", "x": 5, "y": 6, "button": "right"}]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(b)
	if len(b.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(b.injectQueue))
	}
	if b.injectQueue[0].Type != EventPointerDown || b.injectQueue[1].Type != EventPointerUp {
		t.Errorf("queue = %+v", b.injectQueue)
	}
	if b.injectQueue[0].Button != MouseButtonRight {
		t.Errorf("button = %v, want right", b.injectQueue[0].Button)
	}
	if runner.Done() {
		t.Error("runner done while injections are pending")
	}

	// Waits for the queue before finishing.
	runner.step(b)
	if runner.Done() {
		t.Error("runner advanced past a non-empty queue")
	}
	b.injectQueue = nil
	runner.step(b)
	if !runner.Done() {
		t.Error("runner not done after the queue drained")
	}
}

func TestScriptRunnerWait(t *testing.T) {
	b, _ := newTestBoard(t)
	runner, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if runner.Done() {
			t.Fatalf("done after %d frames, want 3", i)
		}
		runner.step(b)
	}
	runner.step(b)
	if !runner.Done() {
		t.Error("runner not done after the wait elapsed")
	}
}

func TestScriptSession(t *testing.T) {
	b, _ := newTestBoard(t)
	runner, err := LoadScript([]byte(`{
		"steps": [
			{"action": "click", "x": 400, "y": 300},
			{"action": "type", "text": "hi"},
			{"action": "key", "key": "escape"},
			{"action": "wheel", "x": 400, "y": 300, "dy": 1},
			{"action": "wait", "frames": 2},
			{"action": "screenshot", "label": "done"}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	b.SetScriptRunner(runner)

	for i := 0; i < 100 && !runner.Done(); i++ {
		tick(t, b, 1)
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	drain(t, b)

	boxes := b.Registry().Boxes()
	if len(boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(boxes))
	}
	if boxes[0].Text != "hi" || boxes[0].X != 0 || boxes[0].Y != 0 {
		t.Errorf("box = %+v, want text hi at the origin", boxes[0])
	}
	if b.Focused() != "" {
		t.Errorf("focused = %q after escape", b.Focused())
	}
	if st := b.View().State(); !approxEqual(st.Scale, 1.1, epsilon) {
		t.Errorf("scale = %v, want 1.1", st.Scale)
	}
	if len(b.screenshotQueue) != 1 || b.screenshotQueue[0] != "done" {
		t.Errorf("screenshot queue = %v", b.screenshotQueue)
	}
}
