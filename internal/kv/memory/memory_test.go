package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/zentracker/internal/kv"
	"github.com/MrJamesThe3rd/zentracker/internal/kv/memory"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.Get(ctx, kv.KeyTheme)
	assert.ErrorIs(t, err, kv.ErrNotFound)

	value := []byte("dark")
	require.NoError(t, s.Put(ctx, kv.KeyTheme, value))
	value[0] = 'X'

	got, err := s.Get(ctx, kv.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", string(got))

	require.NoError(t, s.Delete(ctx, kv.KeyTheme))
	require.NoError(t, s.Delete(ctx, kv.KeyTheme))

	_, err = s.Get(ctx, kv.KeyTheme)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}
