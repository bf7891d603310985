// Package resthttp реализует REST API сервиса заметок поверх notestore. Эндпоинты:
//   - GET /notes/{name} — отдаёт текст заметки как text/plain.
//   - PUT /notes/{name} — полностью заменяет текст существующей заметки телом запроса.
//   - DELETE /notes/{name} — удаляет заметку.
//   - GET /notes — JSON-массив всех заметок {name, text}.
//   - POST /write — создаёт заметку из полей формы note_name и note.
//   - GET /health — число заметок и их суммарный размер.
//   - POST /admin/gc — вручную чистит недописанные временные файлы.
package resthttp
