package models

// NoteFileSuffix дописывается к имени заметки при сохранении на диск.
const NoteFileSuffix = ".txt"

// Note — именованный фрагмент текста, единственная сущность сервиса.
type Note struct {
	Name string `json:"name"`
	Text string `json:"text"`
}
