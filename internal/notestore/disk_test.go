package notestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sir_venger/notes_lite/internal/models"
	"github.com/sir_venger/notes_lite/internal/notestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiskStore(t *testing.T) (*notestore.Store, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "notes")
	s := notestore.New(root)
	require.NoError(t, s.Init(context.Background()))
	return s, root
}

func TestStore_OnDiskLayout(t *testing.T) {
	s, root := newDiskStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "todo", "buy milk"))

	b, err := os.ReadFile(filepath.Join(root, "todo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "buy milk", string(b))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "todo.txt", entries[0].Name())
}

func TestStore_ListIgnoresForeignEntries(t *testing.T) {
	s, root := newDiskStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "a", "hello"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".note-tmp-123"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.txt"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "nested.txt"), []byte("x"), 0o644))

	notes, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Note{{Name: "a", Text: "hello"}}, notes)
}

func TestStore_ListSkipsVanishedNote(t *testing.T) {
	s, root := newDiskStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "a", "hello"))
	// висячая ссылка ведёт себя как заметка, удалённая между сканированием и чтением
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling.txt")))

	notes, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Note{{Name: "a", Text: "hello"}}, notes)
}

func TestStore_ListAbortsOnUnreadableNote(t *testing.T) {
	s, root := newDiskStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "a", "hello"))
	target := filepath.Join(t.TempDir(), "a-directory")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.Symlink(target, filepath.Join(root, "broken.txt")))

	_, err := s.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStorage)
}

func TestStore_ListMissingRoot(t *testing.T) {
	s := notestore.New(filepath.Join(t.TempDir(), "never-created"))

	notes, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestStore_StorageFailureIsWrapped(t *testing.T) {
	s, root := newDiskStore(t)
	ctx := context.Background()

	// каталог на месте файла заметки: Stat говорит "не обычный файл", Get — ошибка чтения
	require.NoError(t, os.Mkdir(filepath.Join(root, "weird.txt"), 0o755))

	ok, err := s.Exists(ctx, "weird")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Get(ctx, "weird")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStorage)
}

func TestSweepOnce(t *testing.T) {
	root := t.TempDir()

	stale := filepath.Join(root, ".note-tmp-111")
	fresh := filepath.Join(root, ".note-tmp-222")
	lookalike := filepath.Join(root, ".note-tmp-333.txt")
	for _, p := range []string{stale, fresh, lookalike} {
		require.NoError(t, os.WriteFile(p, []byte("partial"), 0o644))
	}
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))
	require.NoError(t, os.Chtimes(lookalike, old, old))

	n, err := notestore.SweepOnce(root, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, lookalike)
}

func TestLockRoot(t *testing.T) {
	root := t.TempDir()

	unlock, err := notestore.LockRoot(context.Background(), root)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	_, err = notestore.LockRoot(ctx, root)
	assert.Error(t, err)

	require.NoError(t, unlock())

	unlock, err = notestore.LockRoot(context.Background(), root)
	require.NoError(t, err)
	require.NoError(t, unlock())
}
