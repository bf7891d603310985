package notestore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sir_venger/notes_lite/internal/models"
)

// MemoryStore хранит заметки только в оперативной памяти; удобно для тестов.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[string]string
}

// NewMemoryStore создаёт пустое in-memory хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notes: map[string]string{}}
}

func (s *MemoryStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validateName(name); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.notes[name]
	return ok, nil
}

func (s *MemoryStore) Get(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateName(name); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.notes[name]
	if !ok {
		return "", fmt.Errorf("%q: %w", name, models.ErrNotFound)
	}
	return text, nil
}

func (s *MemoryStore) Create(ctx context.Context, name, text string) error {
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
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[name]; ok {
		return fmt.Errorf("%q: %w", name, models.ErrAlreadyExists)
	}
	s.notes[name] = text
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, name, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateText(text); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[name]; !ok {
		return fmt.Errorf("%q: %w", name, models.ErrNotFound)
	}
	s.notes[name] = text
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[name]; !ok {
		return fmt.Errorf("%q: %w", name, models.ErrNotFound)
	}
	delete(s.notes, name)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Note, 0, len(s.notes))
	for name, text := range s.notes {
		out = append(out, models.Note{Name: name, Text: text})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Notes: len(s.notes)}
	for _, text := range s.notes {
		st.TotalBytes += int64(len(text))
	}
	return st, nil
}
