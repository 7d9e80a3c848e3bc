package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/concord/pkg/ports"
)

func noopHandler(_ context.Context, _ ports.Client, _ map[string]any) (any, error) {
	return nil, nil
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(ToolSpec{Name: "send_message", Handler: noopHandler}))

	spec, ok := r.Lookup("send_message")
	require.True(t, ok)
	assert.Equal(t, "send_message", spec.Name)

	_, ok = r.Lookup("no_such_tool")
	assert.False(t, ok)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(ToolSpec{Name: "send_message", Handler: noopHandler}))

	err := r.Register(ToolSpec{Name: "send_message", Handler: noopHandler})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegisterRejectsIncompleteSpecs(t *testing.T) {
	r := New()
	assert.Error(t, r.Register(ToolSpec{Handler: noopHandler}))
	assert.Error(t, r.Register(ToolSpec{Name: "send_message"}))
	assert.Equal(t, 0, r.Len())
}

func TestSpecsAreSortedByName(t *testing.T) {
	r := New()
	for _, name := range []string{"list_servers", "ban_member", "send_message"} {
		require.NoError(t, r.Register(ToolSpec{Name: name, Handler: noopHandler}))
	}

	specs := r.Specs()
	require.Len(t, specs, 3)
	assert.Equal(t, "ban_member", specs[0].Name)
	assert.Equal(t, "list_servers", specs[1].Name)
	assert.Equal(t, "send_message", specs[2].Name)
}
