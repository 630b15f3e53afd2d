package log

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"":        LevelInfo,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		" fatal ": LevelFatal,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestLogger_FieldsReachCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewWithCore(core, LevelDebug)

	logger.With(String("session", "abc")).Info("loaded",
		Int("count", 3),
		Int32("id", 7),
		Duration("took", time.Second),
		Bool("ok", true),
		Err(errors.New("boom")),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "abc", fields["session"])
	require.EqualValues(t, 3, fields["count"])
	require.EqualValues(t, 7, fields["id"])
	require.Equal(t, true, fields["ok"])
	require.Equal(t, "boom", fields["error"])
}

func TestLogger_LevelFilter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewWithCore(core, LevelWarn)

	logger.Log(LevelInfo, "dropped")
	logger.Log(LevelError, "kept")
	require.Equal(t, LevelWarn, logger.GetLevel())

	logger.SetLevel(LevelDebug)
	logger.Log(LevelDebug, "kept too")

	require.Equal(t, 2, logs.Len())
}

func TestLogger_NilErrorIsSkipped(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	NewWithCore(core, LevelDebug).Warn("no error", Err(nil))

	require.Equal(t, 1, logs.Len())
	_, ok := logs.All()[0].ContextMap()["error"]
	require.False(t, ok)
}

func TestNewNop(t *testing.T) {
	require.NotPanics(t, func() {
		NewNop().Info("nothing", String("k", "v"))
	})
}

func resetProvided(t *testing.T) {
	t.Helper()
	innerLogger = nil
	loggerInitializeOnce = sync.Once{}
	t.Cleanup(func() {
		innerLogger = nil
		loggerInitializeOnce = sync.Once{}
	})
}

func TestProvide_BeforeNew(t *testing.T) {
	resetProvided(t)

	done := make(chan *Logger, 1)
	go func() { done <- Provide() }()

	var first *Logger
	select {
	case first = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Provide did not return")
	}
	require.NotNil(t, first)
	require.Equal(t, LevelInfo, first.GetLevel())
	require.Same(t, first, Provide())

	other := New(LevelDebug)
	require.NotSame(t, first, other)
	require.Same(t, first, Provide())
}

func TestProvide_ReturnsFirstNew(t *testing.T) {
	resetProvided(t)

	first := New(LevelWarn)
	_ = New(LevelError)
	require.Same(t, first, Provide())
}
