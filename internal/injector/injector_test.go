package injector

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/gmruntime/internal/core/assets/loader"
	"github.com/zeusync/gmruntime/internal/core/config"
)

func TestInitializeLoader(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	type result struct {
		l   *loader.Loader
		err error
	}
	done := make(chan result, 1)
	go func() {
		l, err := InitializeLoader(cfg)
		done <- result{l, err}
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		require.NotNil(t, res.l)
	case <-time.After(5 * time.Second):
		t.Fatal("InitializeLoader did not return")
	}
}

func TestProvideBuiltins(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	names, err := ProvideBuiltins(cfg)
	require.NoError(t, err)
	require.Empty(t, names)

	cfg.BuiltinsFile = "builtins.txt"
	_, err = ProvideBuiltins(cfg)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "builtins.txt"), []byte("abs\nsin\n"), 0o644))
	names, err = ProvideBuiltins(cfg)
	require.NoError(t, err)
	require.True(t, names.Has("sin"))
}
