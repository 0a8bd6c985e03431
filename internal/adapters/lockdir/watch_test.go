package lockdir_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fairway/internal/adapters/lockdir"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestDirectory_WatchReloadsOnWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	reloaded := make(chan struct{}, 1)
	log.EXPECT().Info("lock file reloaded").Do(func(string) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	}).MinTimes(1)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	path := filepath.Join(t.TempDir(), "locks.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1}]`), domain.FilePerm))

	dir, err := lockdir.Load(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- dir.Watch(ctx, log, 10*time.Millisecond) }()

	// Give the watcher a moment to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1}, {"id": 2}, {"id": 3}]`), domain.FilePerm))

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("lock file was not reloaded")
	}
	assert.Equal(t, 3, dir.Len())

	cancel()
	require.NoError(t, <-done)
}
