package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/bglist/internal/store"
)

type runCall struct {
	called bool
	update bool
}

func executeRoot(t *testing.T, args ...string) (*runCall, error) {
	t.Helper()
	call := &runCall{}
	cmd := newRootCmd(func(ctx context.Context, update bool) error {
		call.called = true
		call.update = update
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return call, cmd.ExecuteContext(context.Background())
}

func TestRootWithoutFlagDoesNotForceUpdate(t *testing.T) {
	call, err := executeRoot(t)
	require.NoError(t, err)
	require.True(t, call.called)
	require.False(t, call.update)
}

func TestRootUpdateFlags(t *testing.T) {
	for _, args := range [][]string{{"-u"}, {"--update"}, {"--update=true"}} {
		call, err := executeRoot(t, args...)
		require.NoError(t, err, "args %v", args)
		require.True(t, call.update, "args %v", args)
	}
}

func TestRootRejectsUnknownInput(t *testing.T) {
	for _, args := range [][]string{{"--force"}, {"extra"}, {"-x"}} {
		call, err := executeRoot(t, args...)
		require.Error(t, err, "args %v", args)
		require.False(t, call.called, "args %v", args)
	}
}

func TestRunAppPrintsCachedList(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BGLIST_DATA_DIR", dir)
	t.Setenv("METRICS_ENABLED", "false")
	require.NoError(t, store.NewFSStore(dir).Write([]string{"Catan", "Azul"}))

	var stdout, stderr bytes.Buffer
	require.NoError(t, runApp(context.Background(), false, &stdout, &stderr))

	require.Equal(t, "Catan\nAzul\n", stdout.String())
}

func TestRunAppWritesMetricsTextfile(t *testing.T) {
	dir := t.TempDir()
	promFile := filepath.Join(dir, "bglist.prom")
	t.Setenv("BGLIST_DATA_DIR", dir)
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("METRICS_TEXTFILE", promFile)
	require.NoError(t, store.NewFSStore(dir).Write([]string{"Catan"}))

	var stdout, stderr bytes.Buffer
	require.NoError(t, runApp(context.Background(), false, &stdout, &stderr))

	_, err := os.Stat(promFile)
	require.NoError(t, err)
}

func TestRunAppRejectsBadConfig(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "sometimes")

	var stdout, stderr bytes.Buffer
	require.Error(t, runApp(context.Background(), false, &stdout, &stderr))
	require.Empty(t, stdout.String())
}
