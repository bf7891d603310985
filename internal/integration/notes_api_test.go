package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sir_venger/notes_lite/internal/app/resthttp"
	"github.com/sir_venger/notes_lite/internal/config"
	"github.com/sir_venger/notes_lite/internal/models"
	"github.com/sir_venger/notes_lite/pkg/notesclient"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) (notesclient.Client, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "notes")
	cfg := config.Default()
	cfg.StorageRoot = root

	log, _ := test.NewNullLogger()
	h, _, err := resthttp.NewServer(context.Background(), &cfg, log)
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return notesclient.New(srv.URL), root
}

func TestNoteLifecycle(t *testing.T) {
	cli, root := startServer(t)
	ctx := context.Background()

	require.NoError(t, cli.Create(ctx, "x", "abc"))

	b, err := os.ReadFile(filepath.Join(root, "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(b))

	got, err := cli.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, cli.Update(ctx, "x", "xyz"))
	got, err = cli.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)

	require.NoError(t, cli.Delete(ctx, "x"))
	_, err = cli.Get(ctx, "x")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = os.Stat(filepath.Join(root, "x.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestClientErrorMapping(t *testing.T) {
	cli, _ := startServer(t)
	ctx := context.Background()

	assert.ErrorIs(t, cli.Update(ctx, "ghost", "text"), models.ErrNotFound)
	assert.ErrorIs(t, cli.Delete(ctx, "ghost"), models.ErrNotFound)
	assert.ErrorIs(t, cli.Create(ctx, "", "text"), models.ErrInvalidInput)
	assert.ErrorIs(t, cli.Create(ctx, "a/b", "text"), models.ErrInvalidInput)

	require.NoError(t, cli.Create(ctx, "dup", "t1"))
	assert.ErrorIs(t, cli.Create(ctx, "dup", "t2"), models.ErrAlreadyExists)

	got, err := cli.Get(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, "t1", got)
}

func TestListOverDisk(t *testing.T) {
	cli, root := startServer(t)
	ctx := context.Background()

	require.NoError(t, cli.Create(ctx, "a", "hello"))
	require.NoError(t, cli.Create(ctx, "b", "world"))
	// файл, положенный мимо API, тоже становится заметкой
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.txt"), []byte("manual"), 0o644))

	notes, err := cli.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Note{
		{Name: "a", Text: "hello"},
		{Name: "b", Text: "world"},
		{Name: "c", Text: "manual"},
	}, notes)

	h, err := cli.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, notesclient.Health{OK: true, Notes: 3, TotalBytes: 16}, h)
}

func TestConcurrentCreateHasOneWinner(t *testing.T) {
	cli, _ := startServer(t)
	ctx := context.Background()

	const writers = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		others []error
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := cli.Create(ctx, "race", fmt.Sprintf("writer-%d", i))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, models.ErrAlreadyExists):
			default:
				others = append(others, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Empty(t, others)

	got, err := cli.Get(ctx, "race")
	require.NoError(t, err)
	assert.Regexp(t, `^writer-\d$`, got)
}
