package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes"
	"github.com/vovakirdan/cube-arcade/internal/registry"
	"github.com/vovakirdan/cube-arcade/internal/storage"
)

type orderedShutdown struct{ steps *[]string }

func (o orderedShutdown) Shutdown(context.Context) error {
	*o.steps = append(*o.steps, "drain")
	return nil
}

func TestShutdownDrainsBeforeClosingStore(t *testing.T) {
	var steps []string
	err := drainThenClose(context.Background(), orderedShutdown{&steps}, func() {
		steps = append(steps, "close")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"drain", "close"}, steps)
}

func TestSSHServerShutdownClosesStore(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.DBPath = filepath.Join(dir, "runs.db")
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.Logger = log.New(io.Discard)
	cfg.NewGame = func(string) registry.Game { return cubes.New() }

	srv, err := NewSSHServer(cfg)
	require.NoError(t, err)
	require.NotNil(t, srv.store)

	require.NoError(t, srv.Shutdown())

	_, err = srv.store.SaveRun(storage.Run{LevelID: "01-first-steps", Moves: 1})
	assert.Error(t, err, "store is closed after shutdown")
}
