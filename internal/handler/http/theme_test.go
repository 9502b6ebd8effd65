package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souhail747/luxe/internal/store"
)

func TestTheme_ToggleFlipsFlag(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/theme/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeData[store.Theme](t, rec).IsDark)
	assert.True(t, env.flag.Has(store.DarkClass))

	rec = env.do(t, http.MethodGet, "/api/v1/theme", nil)
	assert.JSONEq(t, `{"data":{"isDark":true}}`, rec.Body.String())

	env.do(t, http.MethodPost, "/api/v1/theme/toggle", nil)
	assert.False(t, env.flag.Has(store.DarkClass))
}

func TestTheme_Set(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/v1/theme", map[string]bool{"isDark": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.theme.IsDark())

	rec = env.do(t, http.MethodPut, "/api/v1/theme", map[string]bool{"isDark": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.theme.IsDark())
}

func TestTheme_SetRequiresValue(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/v1/theme", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.theme.IsDark())
}
