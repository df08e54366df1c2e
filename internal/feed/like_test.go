package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeToggle(t *testing.T) {
	l := Like{Count: 5}

	l = l.Toggle()
	assert.Equal(t, Like{State: Pressed, Count: 6}, l)

	l = l.Toggle()
	assert.Equal(t, Like{State: Unpressed, Count: 5}, l)
}

func TestLikeReleaseFloorsAtZero(t *testing.T) {
	l := Like{State: Pressed, Count: 0}.Toggle()
	assert.Equal(t, Like{State: Unpressed, Count: 0}, l)
}

func TestLikeStateString(t *testing.T) {
	assert.Equal(t, "unpressed", Unpressed.String())
	assert.Equal(t, "pressed", Pressed.String())
}
