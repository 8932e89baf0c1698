package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondPressConfirms(t *testing.T) {
	c := NewDeleteConfirm(DefaultConfirmWindow)

	assert.False(t, c.Press("a"), "first press only arms")
	assert.True(t, c.Armed("a"))
	assert.True(t, c.Press("a"), "second press inside the window confirms")
	assert.False(t, c.Armed("a"), "confirmation disarms")
}

func TestArmingIsPerID(t *testing.T) {
	c := NewDeleteConfirm(DefaultConfirmWindow)

	c.Press("a")
	c.Press("b")
	assert.True(t, c.Armed("a"))
	assert.True(t, c.Armed("b"))

	assert.True(t, c.Press("a"))
	assert.True(t, c.Armed("b"), "confirming one id leaves the other armed")
}

func TestWindowSelfClears(t *testing.T) {
	c := NewDeleteConfirm(DefaultConfirmWindow)
	c.Press("a")
	require.True(t, c.Armed("a"))

	// Simulate the window elapsing.
	c.expire("a")
	assert.False(t, c.Armed("a"))
	assert.False(t, c.Press("a"), "a press after expiry arms again instead of confirming")
}

func TestShortWindowExpiresOnItsOwn(t *testing.T) {
	c := NewDeleteConfirm(10 * time.Millisecond)
	c.Press("a")

	assert.Eventually(t, func() bool { return !c.Armed("a") }, time.Second, 5*time.Millisecond)
}

func TestDisarm(t *testing.T) {
	c := NewDeleteConfirm(DefaultConfirmWindow)
	c.Press("a")
	c.Disarm("a")
	assert.False(t, c.Armed("a"))
	c.Disarm("never-armed") // no-op
}
