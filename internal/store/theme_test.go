package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeStore_ToggleFlipsStoreAndFlag(t *testing.T) {
	ctx := context.Background()
	doc := NewDocumentClass("antialiased")
	s := NewThemeStore(Theme{}, doc)

	assert.False(t, s.IsDark())
	assert.False(t, doc.Has(DarkClass))

	assert.True(t, s.ToggleTheme(ctx))
	assert.True(t, s.IsDark())
	assert.True(t, doc.Has(DarkClass))
	assert.Equal(t, []string{"antialiased", "dark"}, doc.Classes())

	assert.False(t, s.ToggleTheme(ctx))
	assert.False(t, doc.Has(DarkClass))
	assert.True(t, doc.Has("antialiased"))
}

func TestThemeStore_SetTheme(t *testing.T) {
	ctx := context.Background()
	doc := NewDocumentClass()
	s := NewThemeStore(Theme{}, doc)

	var changes []Change[Theme]
	s.Subscribe(func(_ context.Context, c Change[Theme]) { changes = append(changes, c) })

	s.SetTheme(ctx, true)
	s.SetTheme(ctx, true)

	assert.True(t, s.IsDark())
	assert.True(t, doc.Has(DarkClass))
	require.Len(t, changes, 2)
	assert.Equal(t, ActionThemeChanged, changes[0].Action)
	assert.True(t, changes[1].State.IsDark)
}

func TestThemeStore_RehydratedDarkAppliesFlag(t *testing.T) {
	doc := NewDocumentClass()
	s := NewThemeStore(Theme{IsDark: true}, doc)
	assert.True(t, s.IsDark())
	assert.True(t, doc.Has(DarkClass))
}
