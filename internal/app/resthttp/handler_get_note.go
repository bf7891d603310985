package resthttp

import (
	"io"
	"net/http"

	"github.com/sir_venger/notes_lite/pkg/httperrors"
)

func (s *Server) getNote(w http.ResponseWriter, r *http.Request) {
	name, err := noteName(r)
	if err != nil {
		httperrors.Write(w, s.logger(r), err)
		return
	}

	text, err := s.Notes.Get(r.Context(), name)
	if err != nil {
		httperrors.Write(w, s.logger(r), err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}
