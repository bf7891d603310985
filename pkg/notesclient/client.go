package notesclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sir_venger/notes_lite/internal/models"
	"github.com/sir_venger/notes_lite/pkg/notesproto"
)

const defaultTimeout = 30 * time.Second

type Client interface {
	// Get Достать текст заметки
	Get(ctx context.Context, name string) (string, error)
	// Create Создать новую заметку через форму /write
	Create(ctx context.Context, name, text string) error
	// Update Заменить текст существующей заметки
	Update(ctx context.Context, name, text string) error
	// Delete Удалить заметку
	Delete(ctx context.Context, name string) error
	// List Получить все заметки
	List(ctx context.Context) ([]models.Note, error)
	// Health Проверить готовность сервера
	Health(ctx context.Context) (Health, error)
}

// Health — ответ эндпоинта /health.
type Health struct {
	OK         bool  `json:"ok"`
	Notes      int   `json:"notes"`
	TotalBytes int64 `json:"total_bytes"`
}

type httpClient struct {
	base string
	c    *http.Client
}

// New создаёт HTTP-клиент к серверу заметок по базовому адресу.
func New(baseURL string) Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: defaultTimeout})
}

// NewWithHTTPClient позволяет подменить http.Client (например, в тестах).
func NewWithHTTPClient(baseURL string, c *http.Client) Client {
	return &httpClient{
		base: strings.TrimRight(baseURL, "/"),
		c:    c,
	}
}

func (h *httpClient) noteURL(name string) string {
	return fmt.Sprintf(notesproto.NotePathFormat, h.base, url.PathEscape(name))
}

// Get скачивает текст заметки.
func (h *httpClient) Get(ctx context.Context, name string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.noteURL(name), nil)
	if err != nil {
		return "", err
	}

	body, err := h.do(req, http.StatusOK)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Create отправляет форму с полями note_name и note.
func (h *httpClient) Create(ctx context.Context, name, text string) error {
	form := url.Values{
		notesproto.FieldNoteName: {name},
		notesproto.FieldNote:     {text},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.base+notesproto.WritePath, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err = h.do(req, http.StatusCreated)
	return err
}

// Update заменяет текст заметки.
func (h *httpClient) Update(ctx context.Context, name, text string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, h.noteURL(name), strings.NewReader(text))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	_, err = h.do(req, http.StatusOK)
	return err
}

// Delete удаляет заметку.
func (h *httpClient) Delete(ctx context.Context, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, h.noteURL(name), nil)
	if err != nil {
		return err
	}

	_, err = h.do(req, http.StatusOK)
	return err
}

// List получает все заметки с текстом.
func (h *httpClient) List(ctx context.Context) ([]models.Note, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+notesproto.NotesPath, nil)
	if err != nil {
		return nil, err
	}

	body, err := h.do(req, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var notes []models.Note
	if err := json.Unmarshal(body, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

// Health опрашивает /health и возвращает статистику каталога.
func (h *httpClient) Health(ctx context.Context) (payload Health, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+notesproto.HealthPath, nil)
	if err != nil {
		return Health{}, err
	}

	body, err := h.do(req, http.StatusOK)
	if err != nil {
		return Health{}, fmt.Errorf("health check failed: %w", err)
	}

	if err = json.Unmarshal(body, &payload); err != nil {
		return Health{}, err
	}
	return payload, nil
}

func (h *httpClient) do(req *http.Request, want int) ([]byte, error) {
	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != want {
		return nil, statusError(req, resp.StatusCode, body)
	}
	return body, nil
}

// statusError восстанавливает сентинел-ошибку по статусу ответа.
func statusError(req *http.Request, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	op := req.Method + " " + req.URL.Path

	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	case status == http.StatusBadRequest && strings.Contains(msg, models.ErrAlreadyExists.Error()):
		return fmt.Errorf("%s: %w", op, models.ErrAlreadyExists)
	case status == http.StatusBadRequest:
		return fmt.Errorf("%s: %w: %s", op, models.ErrInvalidInput, msg)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w: %s", op, models.ErrStorage, msg)
	default:
		return fmt.Errorf("%s: unexpected status %d: %s", op, status, msg)
	}
}
