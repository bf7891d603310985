package resthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sir_venger/notes_lite/internal/models"
	"github.com/sir_venger/notes_lite/pkg/httperrors"
	"github.com/sir_venger/notes_lite/pkg/notesproto"
)

const maxFormMemory = 32 << 20

// postWrite создаёт заметку из формы (urlencoded или multipart).
func (s *Server) postWrite(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		httperrors.Write(w, s.logger(r), fmt.Errorf("%w: parse form: %w", models.ErrInvalidInput, err))
		return
	}

	name, text := r.PostFormValue(notesproto.FieldNoteName), r.PostFormValue(notesproto.FieldNote)
	if name == "" || text == "" {
		httperrors.Write(w, s.logger(r), fmt.Errorf("%w: fields %s and %s are required",
			models.ErrInvalidInput, notesproto.FieldNoteName, notesproto.FieldNote))
		return
	}

	if err := s.Notes.Create(r.Context(), name, text); err != nil {
		httperrors.Write(w, s.logger(r), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(models.Note{Name: name, Text: text})
}
