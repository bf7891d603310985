package resthttp

import (
	"net/http"

	"github.com/sir_venger/notes_lite/pkg/httperrors"
)

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	name, err := noteName(r)
	if err != nil {
		httperrors.Write(w, s.logger(r), err)
		return
	}

	if err := s.Notes.Delete(r.Context(), name); err != nil {
		httperrors.Write(w, s.logger(r), err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
