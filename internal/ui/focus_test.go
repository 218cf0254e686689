package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocusCyclesConfigBarDisplayInputBar(t *testing.T) {
	f := FocusConfigBar
	f = f.Next()
	assert.Equal(t, FocusDisplay, f)
	f = f.Next()
	assert.Equal(t, FocusInputBar, f)
	f = f.Next()
	assert.Equal(t, FocusConfigBar, f)
}
