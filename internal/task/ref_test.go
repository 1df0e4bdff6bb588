package task

import (
	"encoding/json"
	"testing"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		input   string
		want    Ref
		wantErr bool
	}{
		{"3", TaskRef(3), false},
		{"3.2", SubRef(3, 2), false},
		{" 12 ", TaskRef(12), false},
		{"", Ref{}, true},
		{"0", Ref{}, true},
		{"-1", Ref{}, true},
		{"3.0", Ref{}, true},
		{"3.-2", Ref{}, true},
		{"abc", Ref{}, true},
		{"3.x", Ref{}, true},
		{"1.2.3", Ref{}, true},
	}

	for _, tt := range tests {
		got, err := ParseRef(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRef(%q) = %v, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRef(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRef(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRefString(t *testing.T) {
	if got := TaskRef(7).String(); got != "7" {
		t.Errorf("TaskRef(7).String() = %q, want %q", got, "7")
	}
	if got := SubRef(3, 2).String(); got != "3.2" {
		t.Errorf("SubRef(3, 2).String() = %q, want %q", got, "3.2")
	}
}

func TestRefParent(t *testing.T) {
	if got := SubRef(3, 2).Parent(); got != TaskRef(3) {
		t.Errorf("SubRef(3, 2).Parent() = %v, want %v", got, TaskRef(3))
	}
	if got := TaskRef(3).Parent(); got != TaskRef(3) {
		t.Errorf("TaskRef(3).Parent() = %v, want %v", got, TaskRef(3))
	}
}

func TestRefLess(t *testing.T) {
	// Task-level sorts before its own subtasks, subtasks by index.
	ordered := []Ref{TaskRef(1), SubRef(1, 1), SubRef(1, 2), TaskRef(2), SubRef(3, 1)}
	for i := 0; i < len(ordered)-1; i++ {
		if !ordered[i].Less(ordered[i+1]) {
			t.Errorf("%v should be less than %v", ordered[i], ordered[i+1])
		}
		if ordered[i+1].Less(ordered[i]) {
			t.Errorf("%v should not be less than %v", ordered[i+1], ordered[i])
		}
	}
}

func TestRefJSON(t *testing.T) {
	data, err := json.Marshal(SubRef(3, 2))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"3.2"` {
		t.Errorf("Marshal = %s, want %q", data, `"3.2"`)
	}

	var r Ref
	if err := json.Unmarshal([]byte(`"4.1"`), &r); err != nil {
		t.Fatalf("Unmarshal string form: %v", err)
	}
	if r != SubRef(4, 1) {
		t.Errorf("Unmarshal string form = %v, want %v", r, SubRef(4, 1))
	}

	// Hand-edited files often write task ids as bare numbers.
	if err := json.Unmarshal([]byte(`5`), &r); err != nil {
		t.Fatalf("Unmarshal numeric form: %v", err)
	}
	if r != TaskRef(5) {
		t.Errorf("Unmarshal numeric form = %v, want %v", r, TaskRef(5))
	}

	if err := json.Unmarshal([]byte(`0`), &r); err == nil {
		t.Error("Unmarshal of 0 should fail")
	}
	if err := json.Unmarshal([]byte(`"bogus"`), &r); err == nil {
		t.Error("Unmarshal of bogus string should fail")
	}
}
