package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug", "stdout")
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := NewLogger("loud", "stdout")
	assert.Error(t, err)
}
