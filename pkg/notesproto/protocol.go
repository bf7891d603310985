// Package notesproto описывает протокол HTTP-взаимодействия с сервисом заметок.
package notesproto

// Пути и параметры REST-протокола.
const (
	NotesPath       = "/notes"
	NotePathFormat  = "%s/notes/%s"
	WritePath       = "/write"
	HealthPath      = "/health"
	GCPath          = "/admin/gc"
	FieldNoteName   = "note_name"
	FieldNote       = "note"
	HeaderRequestID = "X-Request-ID"
)
