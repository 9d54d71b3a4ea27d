package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewline(t *testing.T) {
	assert.Equal(t, "message\n", newline("message"))
	assert.Equal(t, "message\n", newline("message\n"))
	assert.Equal(t, "", newline(""))
}
