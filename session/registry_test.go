package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreForCreatesInitialSession(t *testing.T) {
	reg := NewRegistry()

	st := reg.StoreFor("visitor-a")

	cur, ok := st.Current()
	require.True(t, ok)
	assert.Equal(t, "New Chat", cur.Name)
	assert.Len(t, st.List(), 1)
}

func TestStoreForIsStablePerVisitor(t *testing.T) {
	reg := NewRegistry()

	a1 := reg.StoreFor("visitor-a")
	a2 := reg.StoreFor("visitor-a")
	b := reg.StoreFor("visitor-b")

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
	assert.Equal(t, 2, reg.Len())
}
