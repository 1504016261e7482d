package session_test

import (
	"testing"

	"github.com/nikolayk812/checkout-demo/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_New(t *testing.T) {
	store := session.NewStore()

	id1, sess1 := store.New()
	id2, sess2 := store.New()

	require.NotEmpty(t, id1)
	require.NotEqual(t, id1, id2)

	sess1.Set("k", "v1")
	sess2.Set("k", "v2")

	v, ok := sess1.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v1", v)

	v, ok = sess2.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestStore_GetOrCreate(t *testing.T) {
	store := session.NewStore()

	id, sess := store.GetOrCreate("")
	require.NotEmpty(t, id)
	sess.Set("k", 42)

	sameID, sameSess := store.GetOrCreate(id)
	assert.Equal(t, id, sameID)

	v, ok := sameSess.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	freshID, freshSess := store.GetOrCreate("unknown-id")
	assert.NotEqual(t, "unknown-id", freshID)
	assert.False(t, freshSess.Has("k"))
}

func TestSession_Pop(t *testing.T) {
	store := session.NewStore()
	_, sess := store.New()

	sess.Set("k", "v")
	require.True(t, sess.Has("k"))

	v, ok := sess.Pop("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	// read-once: the second pop finds nothing
	_, ok = sess.Pop("k")
	assert.False(t, ok)
	assert.False(t, sess.Has("k"))
}
