package theme_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/zentracker/internal/kv"
	"github.com/MrJamesThe3rd/zentracker/internal/kv/memory"
	"github.com/MrJamesThe3rd/zentracker/internal/theme"
)

func TestStore_Load(t *testing.T) {
	tests := []struct {
		name string
		seed string
		want theme.Theme
	}{
		{name: "AbsentIsLight", want: theme.Light},
		{name: "Dark", seed: "dark", want: theme.Dark},
		{name: "Light", seed: "light", want: theme.Light},
		{name: "GarbageIsLight", seed: "purple", want: theme.Light},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			slots := memory.New()

			if tt.seed != "" {
				require.NoError(t, slots.Put(ctx, kv.KeyTheme, []byte(tt.seed)))
			}

			s := theme.NewStore(slots)
			s.Load(ctx)

			assert.Equal(t, tt.want, s.Get())
		})
	}
}

func TestStore_Toggle(t *testing.T) {
	ctx := context.Background()
	slots := memory.New()
	s := theme.NewStore(slots)

	got, err := s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, got)

	raw, err := slots.Get(ctx, kv.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", string(raw))

	got, err = s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Light, got)
}

func TestStore_Set(t *testing.T) {
	ctx := context.Background()
	s := theme.NewStore(memory.New())

	require.NoError(t, s.Set(ctx, theme.Dark))
	assert.Equal(t, theme.Dark, s.Get())

	assert.ErrorIs(t, s.Set(ctx, "sepia"), theme.ErrUnknown)
	assert.Equal(t, theme.Dark, s.Get())
}

func TestStore_ToggleSaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	slots := kv.NewMockStore(ctrl)
	slots.EXPECT().Put(gomock.Any(), kv.KeyTheme, []byte("dark")).Return(errors.New("read-only"))

	s := theme.NewStore(slots)

	got, err := s.Toggle(context.Background())
	assert.Error(t, err)
	assert.Equal(t, theme.Light, got)
	assert.Equal(t, theme.Light, s.Get())
}
