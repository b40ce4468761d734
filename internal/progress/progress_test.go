package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name      string
		processed int
		total     int
		want      int
	}{
		{"zero of zero", 0, 0, 0},
		{"negative total", 5, -1, 0},
		{"negative processed", -1, 10, 0},
		{"start", 0, 10, 0},
		{"half", 5, 10, 50},
		{"rounds down", 1, 3, 33},
		{"complete", 10, 10, 100},
		{"processed exceeds total", 12, 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.processed, tt.total))
		})
	}
}

func TestPercentNeverExceeds100(t *testing.T) {
	for processed := 0; processed <= 50; processed++ {
		got := Percent(processed, 20)
		assert.LessOrEqual(t, got, 100)
		assert.GreaterOrEqual(t, got, 0)
	}
}
