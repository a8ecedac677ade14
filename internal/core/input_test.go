package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Len() != 0 || f.Has(ActionJump) {
		t.Fatal("zero frame must be empty")
	}

	f.Set(ActionJump)
	f.Set(ActionJump)
	f.Set(ActionPause)
	if f.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", f.Len())
	}
	if !f.Has(ActionJump) || !f.Has(ActionPause) || f.Has(ActionRestart) {
		t.Error("Has() reports the wrong actions")
	}

	f.Set(ActionNone)
	f.Set(Action(40))
	if f.Len() != 2 || f.Has(ActionNone) {
		t.Error("out-of-range actions must be ignored")
	}

	f.Clear()
	if f.Len() != 0 {
		t.Error("Clear() left actions behind")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		want Color
		ok   bool
	}{
		{"", ColorDefault, true},
		{"Bright-Cyan", ColorBrightCyan, true},
		{" orange ", ColorOrange, true},
		{"grey", ColorGray, true},
		{"chartreuse", ColorDefault, false},
	}

	for _, tt := range tests {
		got, ok := ParseColor(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}

	if ColorGray.String() != "gray" || Color(99).String() != "unknown" {
		t.Error("String() returned unexpected names")
	}
}
