package notestore

import (
	"fmt"
	"os"
	"path/filepath"
)

// tempFilePrefix помечает недописанные файлы; они никогда не оканчиваются на .txt.
const tempFilePrefix = ".note-tmp-"

// writeTemp пишет data во временный файл рядом с целью и возвращает его путь.
func writeTemp(dir string, data []byte, perm os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(name, perm); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("chmod temp file: %w", err)
	}

	return name, nil
}

// writeFileAtomic заменяет содержимое filename целиком через rename временного файла.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := writeTemp(filepath.Dir(filename), data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if err := os.Rename(tmp, filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}

	return nil
}

// createFileExclusive публикует полностью записанный файл под именем filename,
// только если такого файла ещё нет. При занятом имени ошибка удовлетворяет errors.Is(err, fs.ErrExist).
func createFileExclusive(filename string, data []byte, perm os.FileMode) error {
	tmp, err := writeTemp(filepath.Dir(filename), data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, filename); err != nil {
		return err
	}

	return nil
}
