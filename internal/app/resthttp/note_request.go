package resthttp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/sir_venger/notes_lite/internal/models"
)

// noteName достаёт имя заметки из пути. chi отдаёт сегмент в сыром виде, если в URL есть RawPath.
func noteName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}

	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", fmt.Errorf("%w: bad note name escape: %w", models.ErrInvalidInput, err)
	}
	return decoded, nil
}
