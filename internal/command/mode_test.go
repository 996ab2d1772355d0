package command

import (
	"testing"

	"github.com/Iron-Ham/composite/internal/errors"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeAll, "all"},
		{ModeAny, "any"},
		{ModeFirst, "first"},
		{Mode(7), "mode(7)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"all", ModeAll, false},
		{"ALL", ModeAll, false},
		{"", ModeAll, false},
		{"any", ModeAny, false},
		{" first ", ModeFirst, false},
		{"most", ModeAll, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrUnknownMode) {
				t.Errorf("ParseMode(%q) error = %v, want ErrUnknownMode", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMode_Next(t *testing.T) {
	if ModeAll.Next() != ModeAny || ModeAny.Next() != ModeFirst || ModeFirst.Next() != ModeAll {
		t.Error("Next() should cycle all -> any -> first -> all")
	}
}

func TestModes(t *testing.T) {
	modes := Modes()
	if len(modes) != 3 {
		t.Fatalf("Modes() returned %d modes, want 3", len(modes))
	}
	for _, m := range modes {
		if !m.Valid() {
			t.Errorf("%v should be valid", m)
		}
	}
	if Mode(3).Valid() {
		t.Error("Mode(3) should be invalid")
	}
}
