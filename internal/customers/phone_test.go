package customers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+90 555 111 22 33", "5551112233"},
		{"05551112233", "5551112233"},
		{"0555 111 22 33", "5551112233"},
		{"(555) 111-22-33", "5551112233"},
		{"905551112233", "5551112233"},
		{"555 11 22", "5551122"},
		{"", ""},
		{"abc", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestSamePhone(t *testing.T) {
	assert.True(t, SamePhone("+90 555 111 22 33", "05551112233"))
	assert.True(t, SamePhone("0555 111 22 33", "905551112233"))
	assert.False(t, SamePhone("05551112233", "05551112234"))
	assert.False(t, SamePhone("", ""))
	assert.False(t, SamePhone("abc", "def"))
}
