package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{7, 7},
		{int64(2650), 2650},
		{uint8(60), 60},
		{float64(12), 12},
		{"05", 5},
		{[]byte("23"), 23},
		{"xx", 0},
		{nil, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToInt(tt.in), "%#v", tt.in)
	}
}
