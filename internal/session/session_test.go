package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitions(t *testing.T) {
	sess := New()

	_, ok := sess.UserID()
	assert.False(t, ok, "A fresh session must be anonymous")

	sess.SetUser("u1")
	userID, ok := sess.UserID()
	require.True(t, ok)
	assert.Equal(t, "u1", userID)

	sess.SetUser("u2")
	userID, _ = sess.UserID()
	assert.Equal(t, "u2", userID)

	sess.Clear()
	_, ok = sess.UserID()
	assert.False(t, ok)
}

func TestContextRoundTrip(t *testing.T) {
	sess := New()
	sess.SetUser("u1")

	ctx := NewContext(context.Background(), sess)

	userID, ok := FromContext(ctx).UserID()
	require.True(t, ok)
	assert.Equal(t, "u1", userID)
}

func TestFromContextWithoutSession(t *testing.T) {
	_, ok := FromContext(context.Background()).UserID()
	assert.False(t, ok, "A context without a session must read as anonymous")
}
