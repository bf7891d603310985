// Package notestore хранит заметки как отдельные файлы <name>.txt в плоском каталоге.
//
// Стор не держит индекса или кэша: каждая операция заново обращается к файловой системе,
// поэтому единственное состояние сервиса — сам каталог.
package notestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sir_venger/notes_lite/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const notePattern = "*" + models.NoteFileSuffix

// Stats — агрегированные сведения о каталоге заметок.
type Stats struct {
	Notes      int
	TotalBytes int64
}

// Store реализует операции над заметками поверх каталога на диске.
type Store struct {
	root string
	log  logrus.FieldLogger
}

// Option настраивает Store.
type Option func(*Store)

// WithLogger задаёт логгер стора.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New создаёт стор поверх каталога root. Каталог не создаётся, см. Init.
func New(root string, opts ...Option) *Store {
	s := &Store{
		root: root,
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Root возвращает корневой каталог стора.
func (s *Store) Root() string {
	return s.root
}

// Init гарантирует наличие корневого каталога.
func (s *Store) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("%w: create root %s: %w", models.ErrStorage, s.root, err)
	}

	return nil
}

// Exists сообщает, сохранена ли заметка с таким именем.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validateName(name); err != nil {
		return false, err
	}

	info, err := os.Stat(s.pathFor(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat %q: %w", models.ErrStorage, name, err)
	}

	return info.Mode().IsRegular(), nil
}

// Get возвращает полный текст заметки.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateName(name); err != nil {
		return "", err
	}

	b, err := os.ReadFile(s.pathFor(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%q: %w", name, models.ErrNotFound)
		}
		return "", fmt.Errorf("%w: read %q: %w", models.ErrStorage, name, err)
	}

	return string(b), nil
}

// Create сохраняет новую заметку. Существующая заметка не перезаписывается.
func (s *Store) Create(ctx context.Context, name, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("%w: note text is empty", models.ErrInvalidInput)
	}
	if err := validateText(text); err != nil {
		return err
	}

	ok, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%q: %w", name, models.ErrAlreadyExists)
	}

	// link не перезаписывает цель, так что гонка двух Create даёт ровно одного победителя.
	if err := createFileExclusive(s.pathFor(name), []byte(text), 0o644); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%q: %w", name, models.ErrAlreadyExists)
		}
		return fmt.Errorf("%w: create %q: %w", models.ErrStorage, name, err)
	}

	s.log.WithFields(logrus.Fields{"op": "create", "name": name, "bytes": len(text)}).Debug("note stored")
	return nil
}

// Update полностью заменяет текст существующей заметки.
func (s *Store) Update(ctx context.Context, name, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateText(text); err != nil {
		return err
	}

	ok, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%q: %w", name, models.ErrNotFound)
	}

	if err := writeFileAtomic(s.pathFor(name), []byte(text), 0o644); err != nil {
		return fmt.Errorf("%w: update %q: %w", models.ErrStorage, name, err)
	}

	s.log.WithFields(logrus.Fields{"op": "update", "name": name, "bytes": len(text)}).Debug("note replaced")
	return nil
}

// Delete безвозвратно удаляет заметку.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	if err := os.Remove(s.pathFor(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%q: %w", name, models.ErrNotFound)
		}
		return fmt.Errorf("%w: delete %q: %w", models.ErrStorage, name, err)
	}

	s.log.WithFields(logrus.Fields{"op": "delete", "name": name}).Debug("note removed")
	return nil
}

// List перечисляет все заметки каталога вместе с их содержимым.
// Заметка, удалённая между сканированием и чтением, пропускается; любая другая ошибка чтения
// прерывает весь листинг.
func (s *Store) List(ctx context.Context) ([]models.Note, error) {
	names, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	texts := make([]*string, len(names))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, name := range names {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			b, err := os.ReadFile(s.pathFor(name))
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return fmt.Errorf("%w: read %q: %w", models.ErrStorage, name, err)
			}

			text := string(b)
			texts[i] = &text
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	notes := make([]models.Note, 0, len(names))
	for i, name := range names {
		if texts[i] == nil {
			continue
		}
		notes = append(notes, models.Note{Name: name, Text: *texts[i]})
	}

	return notes, nil
}

// Stats считает число заметок и их суммарный размер, не читая содержимое.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	names, err := s.scan(ctx)
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	for _, name := range names {
		info, err := os.Stat(s.pathFor(name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Stats{}, fmt.Errorf("%w: stat %q: %w", models.ErrStorage, name, err)
		}
		st.Notes++
		st.TotalBytes += info.Size()
	}

	return st, nil
}

// scan возвращает отсортированные имена заметок из корня (без рекурсии).
func (s *Store) scan(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fsys := os.DirFS(s.root)
	var names []string
	err := doublestar.GlobWalk(fsys, notePattern, func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		names = append(names, strings.TrimSuffix(path, models.NoteFileSuffix))
		return nil
	}, doublestar.WithFailOnIOErrors())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: scan %s: %w", models.ErrStorage, s.root, err)
	}

	sort.Strings(names)
	return names, nil
}

func (s *Store) pathFor(name string) string {
	return filepath.Join(s.root, name+models.NoteFileSuffix)
}

// validateName не даёт имени выйти за пределы плоского корня; больше ничего не нормализуется.
func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: note name is empty", models.ErrInvalidInput)
	case name == "." || name == "..":
		return fmt.Errorf("%w: note name %q is reserved", models.ErrInvalidInput, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: note name %q contains a path separator", models.ErrInvalidInput, name)
	}

	return nil
}

func validateText(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: note text is not valid UTF-8", models.ErrInvalidInput)
	}

	return nil
}
