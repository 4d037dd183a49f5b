package notefield

import (
	"strings"
	"testing"
)

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry(&seqIDs{})
	id := r.Create(12.5, -4)
	obj, ok := r.Get(id)
	if !ok {
		t.Fatal("created box not found")
	}
	if obj.X != 12.5 || obj.Y != -4 || obj.Text != "" {
		t.Errorf("box = %+v", obj)
	}
	if !r.IsNewlyCreated(id) {
		t.Error("new box missing grace flag")
	}
	if r.AutoFocusTarget() != id {
		t.Errorf("AutoFocusTarget() = %q, want %q", r.AutoFocusTarget(), id)
	}
}

func TestRegistryDefaultIDsAreDistinct(t *testing.T) {
	r := NewRegistry(nil)
	a := r.Create(0, 0)
	b := r.Create(0, 0)
	if a == b {
		t.Fatalf("two creates in one tick produced the same id %q", a)
	}
	if !strings.HasPrefix(a, "tb-") {
		t.Errorf("id %q missing prefix", a)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistryRetriesCollidingIDs(t *testing.T) {
	r := NewRegistry(&seqIDs{script: []string{"dup", "dup", "", "fresh"}})
	a := r.Create(0, 0)
	b := r.Create(1, 1)
	if a != "dup" || b != "fresh" {
		t.Errorf("ids = %q, %q; want dup, fresh", a, b)
	}
}

func TestRegistryOrderAndCopies(t *testing.T) {
	r := NewRegistry(&seqIDs{})
	a := r.Create(0, 0)
	b := r.Create(1, 0)
	c := r.Create(2, 0)
	r.Delete(b)

	boxes := r.Boxes()
	if len(boxes) != 2 || boxes[0].ID != a || boxes[1].ID != c {
		t.Fatalf("Boxes() = %+v", boxes)
	}
	boxes[0].Text = "mutated"
	if obj, _ := r.Get(a); obj.Text != "" {
		t.Error("Boxes() returned a live reference")
	}
}

func TestRegistryUnknownIDs(t *testing.T) {
	r := NewRegistry(&seqIDs{})
	if r.UpdateText("nope", "x") {
		t.Error("UpdateText on unknown id reported success")
	}
	if r.Delete("nope") {
		t.Error("Delete on unknown id reported success")
	}
	if r.Blur("nope") {
		t.Error("Blur on unknown id reported deletion")
	}
	r.ClearNewlyCreated("nope")
}

func TestRegistryDeleteClearsAutoFocus(t *testing.T) {
	r := NewRegistry(&seqIDs{})
	id := r.Create(0, 0)
	r.Delete(id)
	if r.AutoFocusTarget() != "" {
		t.Error("deleted box is still the auto-focus target")
	}
}

func TestRegistryBlur(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		clearGrace  bool
		wantDeleted bool
	}{
		{"new empty survives first blur", "", false, false},
		{"empty after grace", "", true, true},
		{"whitespace after grace", " \t\n ", true, true},
		{"text after grace", "hello", true, false},
		{"padded text", "  hi  ", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(&seqIDs{})
			id := r.Create(0, 0)
			r.UpdateText(id, tt.text)
			if tt.clearGrace {
				r.ClearNewlyCreated(id)
			}
			if got := r.Blur(id); got != tt.wantDeleted {
				t.Errorf("Blur() = %v, want %v", got, tt.wantDeleted)
			}
			if _, ok := r.Get(id); ok == tt.wantDeleted {
				t.Errorf("box present = %v after Blur", ok)
			}
		})
	}
}

func TestRegistryGraceLastsOneBlur(t *testing.T) {
	r := NewRegistry(&seqIDs{})
	id := r.Create(0, 0)
	if r.Blur(id) {
		t.Fatal("first blur deleted a newly created box")
	}
	if r.IsNewlyCreated(id) {
		t.Fatal("grace flag survived the first blur")
	}
	if !r.Blur(id) {
		t.Error("second blur kept an empty box")
	}
}
