package resthttp

import (
	"net/http"

	"github.com/sir_venger/notes_lite/internal/notestore"
)

// gcOnce вручную запускает сбор недописанных временных файлов.
func (s *Server) gcOnce(w http.ResponseWriter, r *http.Request) {
	n, err := notestore.SweepOnce(s.Cfg.StorageRoot, s.Cfg.SweepTTL)
	if err != nil {
		s.logger(r).WithField("err", err).Warn("manual sweep failed")
	} else if n > 0 {
		s.logger(r).WithField("removed", n).Info("stale temp files removed")
	}

	w.WriteHeader(http.StatusNoContent)
}
