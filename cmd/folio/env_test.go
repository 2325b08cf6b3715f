package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/justyntemme/folio/internal/config"
	"github.com/justyntemme/folio/internal/logging"
	"github.com/justyntemme/folio/internal/reader"
	"github.com/justyntemme/folio/internal/storage"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx := contextWithEnv(context.Background())
	env := envFromContext(ctx)

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	cfg.Storage.Backend = storage.BackendFile
	env.Cfg = cfg
	env.Log = &logging.Logger{Logger: zaptest.NewLogger(t)}
	return ctx
}

func TestEnvFromContextPanicsWithoutEnv(t *testing.T) {
	assert.Panics(t, func() { envFromContext(context.Background()) })
}

func TestPreferencesResetRoundTrip(t *testing.T) {
	ctx := testContext(t)

	err := withPreferences(ctx, func(_ *localEnv, _ storage.KV, prefs *reader.Preferences) error {
		prefs.ToggleTheme()
		prefs.AdjustFontLevel(2)
		return nil
	})
	require.NoError(t, err)

	err = withPreferences(ctx, func(_ *localEnv, _ storage.KV, prefs *reader.Preferences) error {
		assert.Equal(t, reader.ThemeDark, prefs.Theme())
		assert.Equal(t, reader.MaxFontLevel, prefs.FontLevel())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, resetPrefs(ctx, nil))

	err = withPreferences(ctx, func(_ *localEnv, _ storage.KV, prefs *reader.Preferences) error {
		assert.Equal(t, reader.DefaultTheme, prefs.Theme())
		assert.Equal(t, reader.DefaultFontLevel, prefs.FontLevel())
		return nil
	})
	require.NoError(t, err)
}

func TestPrintPrefsListsStoredKeys(t *testing.T) {
	ctx := testContext(t)

	var out bytes.Buffer
	err := withPreferences(ctx, func(env *localEnv, kv storage.KV, prefs *reader.Preferences) error {
		return printPrefs(&out, env, kv, prefs)
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "theme:      light")
	assert.Contains(t, out.String(), "nothing, defaults in effect")

	err = withPreferences(ctx, func(_ *localEnv, _ storage.KV, prefs *reader.Preferences) error {
		prefs.ToggleTheme()
		prefs.AdjustFontLevel(1)
		return nil
	})
	require.NoError(t, err)

	out.Reset()
	err = withPreferences(ctx, func(env *localEnv, kv storage.KV, prefs *reader.Preferences) error {
		return printPrefs(&out, env, kv, prefs)
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "theme:      dark")
	assert.Contains(t, out.String(), "font-index: 2")
	assert.Contains(t, out.String(), `font-index = "2"`)
	assert.Contains(t, out.String(), `theme = "dark"`)
}
