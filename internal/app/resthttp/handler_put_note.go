package resthttp

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sir_venger/notes_lite/internal/models"
	"github.com/sir_venger/notes_lite/pkg/httperrors"
)

// putNote заменяет текст существующей заметки телом запроса.
func (s *Server) putNote(w http.ResponseWriter, r *http.Request) {
	name, err := noteName(r)
	if err != nil {
		httperrors.Write(w, s.logger(r), err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		httperrors.Write(w, s.logger(r), fmt.Errorf("%w: read body: %w", models.ErrInvalidInput, err))
		return
	}

	text := string(body)
	if err := s.Notes.Update(r.Context(), name, text); err != nil {
		httperrors.Write(w, s.logger(r), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.Note{Name: name, Text: text})
}
