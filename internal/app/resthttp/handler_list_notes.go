package resthttp

import (
	"encoding/json"
	"net/http"

	"github.com/sir_venger/notes_lite/internal/models"
	"github.com/sir_venger/notes_lite/pkg/httperrors"
)

// listNotes отдаёт все заметки вместе с текстом. Пустой каталог — пустой массив, не null.
func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.Notes.List(r.Context())
	if err != nil {
		httperrors.Write(w, s.logger(r), err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(notes); err != nil {
		s.logger(r).WithField("err", err).Warn("encode notes list")
	}
}
