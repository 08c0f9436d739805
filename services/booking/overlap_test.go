package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		startA, endA, startB, endB     int
		want                           bool
	}{
		{"identical intervals", 600, 660, 600, 660, true},
		{"contained interval", 600, 720, 630, 660, true},
		{"partial overlap left", 600, 660, 630, 690, true},
		{"partial overlap right", 630, 690, 600, 660, true},
		{"disjoint", 600, 660, 720, 780, false},
		{"back to back does not overlap", 600, 660, 660, 720, false},
		{"back to back reversed", 660, 720, 600, 660, false},
		{"one minute overlap", 600, 661, 660, 720, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.startA, tt.endA, tt.startB, tt.endB))
		})
	}
}

func TestOverlapsSymmetric(t *testing.T) {
	cases := [][4]int{
		{600, 660, 630, 690},
		{600, 660, 660, 720},
		{0, 1440, 720, 721},
		{100, 200, 300, 400},
	}
	for _, c := range cases {
		assert.Equal(t,
			Overlaps(c[0], c[1], c[2], c[3]),
			Overlaps(c[2], c[3], c[0], c[1]),
			"overlap must be symmetric for %v", c)
	}
}
