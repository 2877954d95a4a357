package locale

import "testing"

func TestFor(t *testing.T) {
	if got := For(LTR); got.Loading != "Loading..." || got.ErrorTitle != "Loading Error" || got.Retry != "Try Again" {
		t.Errorf("unexpected ltr catalog: %+v", got)
	}
	if got := For(RTL); got.Dir != RTL || got.Retry != "حاول مرة أخرى" {
		t.Errorf("unexpected rtl catalog: %+v", got)
	}
	if got := For("vertical"); got.Dir != LTR {
		t.Errorf("unknown direction should fall back to ltr, got %q", got.Dir)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"", LTR, false},
		{"ltr", LTR, false},
		{" RTL ", RTL, false},
		{"sideways", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
