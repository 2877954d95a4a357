package gesture

import "testing"

func TestSwipe(t *testing.T) {
	tests := []struct {
		name      string
		start     float64
		end       float64
		scrollTop float64
		want      bool
	}{
		{"long swipe at top", 10, 150, 0, true},
		{"exactly threshold", 10, 110, 0, false},
		{"short swipe", 10, 80, 0, false},
		{"scrolled content", 10, 300, 42, false},
		{"upward swipe", 300, 10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Swipe
			s.Start(tt.start)
			if got := s.End(tt.end, tt.scrollTop); got != tt.want {
				t.Errorf("End(%v, %v) = %v, want %v", tt.end, tt.scrollTop, got, tt.want)
			}
		})
	}
}

func TestSwipeRequiresStart(t *testing.T) {
	var s Swipe
	if s.End(500, 0) {
		t.Fatal("end without start must not dismiss")
	}

	s.Start(0)
	if !s.End(200, 0) {
		t.Fatal("expected dismiss")
	}
	if s.End(400, 0) {
		t.Fatal("a touch can only end once")
	}

	s.Start(0)
	s.Reset()
	if s.End(200, 0) {
		t.Fatal("reset touch must not dismiss")
	}
}

func TestCustomThreshold(t *testing.T) {
	s := Swipe{Threshold: 40}
	s.Start(0)
	if !s.End(50, 0) {
		t.Fatal("expected dismiss with threshold 40")
	}
}
