package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayNameFromAddress(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"jane.doe@corp.example", "Jane Doe"},
		{"bob@corp.example", "Bob"},
		{"mary_ann-smith@corp.example", "Mary Ann Smith"},
		{"x+filter@corp.example", "X Filter"},
		{"no-at-sign", "No At Sign"},
		{"@corp.example", "User"},
		{"", "User"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayNameFromAddress(tt.addr), "addr %q", tt.addr)
	}
}
