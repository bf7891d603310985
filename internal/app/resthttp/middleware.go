package resthttp

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sir_venger/notes_lite/pkg/notesproto"
	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// requestID проставляет идентификатор запроса и кладёт в контекст логгер с ним.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(notesproto.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(notesproto.HeaderRequestID, id)

		entry := s.Log.WithField("request_id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, entry)))
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger(r).WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"bytes":    ww.BytesWritten(),
			"duration": time.Since(start),
		}).Info("request served")
	})
}

// logger возвращает логгер запроса, если его положил requestID.
func (s *Server) logger(r *http.Request) logrus.FieldLogger {
	if entry, ok := r.Context().Value(ctxKey{}).(logrus.FieldLogger); ok {
		return entry
	}
	return s.Log
}
