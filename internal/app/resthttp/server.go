package resthttp

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sir_venger/notes_lite/internal/config"
	"github.com/sir_venger/notes_lite/internal/models"
	"github.com/sir_venger/notes_lite/internal/notestore"
	"github.com/sir_venger/notes_lite/pkg/notesproto"
	"github.com/sirupsen/logrus"
)

// NoteStore — операции над заметками, которые нужны обработчикам.
type NoteStore interface {
	Exists(ctx context.Context, name string) (bool, error)
	Get(ctx context.Context, name string) (string, error)
	Create(ctx context.Context, name, text string) error
	Update(ctx context.Context, name, text string) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]models.Note, error)
	Stats(ctx context.Context) (notestore.Stats, error)
}

var (
	_ NoteStore = (*notestore.Store)(nil)
	_ NoteStore = (*notestore.MemoryStore)(nil)
)

type Server struct {
	Notes NoteStore
	Cfg   *config.Config
	Log   logrus.FieldLogger
}

// NewServer конструктор: поднимает стор поверх каталога из конфигурации.
func NewServer(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (http.Handler, *Server, error) {
	notes, err := buildNoteStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	srv := New(notes, cfg, log)
	return srv.routes(), srv, nil
}

// New собирает сервер поверх готового стора.
func New(notes NoteStore, cfg *config.Config, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Server{
		Notes: notes,
		Cfg:   cfg,
		Log:   log,
	}
}

// Handler возвращает корневой HTTP-обработчик.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

func (s *Server) routes() http.Handler {
	rtr := chi.NewRouter()
	rtr.Use(s.requestID, s.accessLog, middleware.Recoverer)

	rtr.Route(notesproto.NotesPath, func(r chi.Router) {
		r.Get("/", s.listNotes)
		r.Get("/{name}", s.getNote)
		r.Put("/{name}", s.putNote)
		r.Delete("/{name}", s.deleteNote)
	})
	rtr.Post(notesproto.WritePath, s.postWrite)

	rtr.Get(notesproto.HealthPath, s.health)
	rtr.Post(notesproto.GCPath, s.gcOnce)

	return rtr
}

func buildNoteStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*notestore.Store, error) {
	store := notestore.New(cfg.StorageRoot, notestore.WithLogger(log))
	if err := store.Init(ctx); err != nil {
		return nil, err
	}

	return store, nil
}
