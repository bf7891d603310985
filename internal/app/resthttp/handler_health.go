package resthttp

import (
	"encoding/json"
	"net/http"

	"github.com/sir_venger/notes_lite/pkg/httperrors"
)

// healthStats — payload ответа /health.
type healthStats struct {
	OK         bool  `json:"ok"`
	Notes      int   `json:"notes"`
	TotalBytes int64 `json:"total_bytes"`
}

// health возвращает агрегированную статистику по каталогу заметок.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	st, err := s.Notes.Stats(r.Context())
	if err != nil {
		httperrors.Write(w, s.logger(r), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthStats{
		OK:         true,
		Notes:      st.Notes,
		TotalBytes: st.TotalBytes,
	})
}
