package notestore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sir_venger/notes_lite/internal/models"
	"github.com/sirupsen/logrus"
)

// StartSweeper стартует периодическую очистку недописанных временных файлов.
func StartSweeper(root string, ttl, every time.Duration, log logrus.FieldLogger) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-ticker.C:
				n, err := SweepOnce(root, ttl)
				if err != nil {
					log.WithField("err", err).Warn("temp file sweep failed")
					continue
				}
				if n > 0 {
					log.WithField("removed", n).Info("stale temp files removed")
				}
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}

// SweepOnce удаляет временные файлы старше ttl и возвращает их число.
func SweepOnce(root string, ttl time.Duration) (int, error) {
	now := time.Now()
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, tempFilePrefix) || strings.HasSuffix(name, models.NoteFileSuffix) {
			continue
		}

		fi, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(fi.ModTime()) < ttl {
			continue
		}

		if err := os.Remove(filepath.Join(root, name)); err == nil {
			removed++
		}
	}

	return removed, nil
}
