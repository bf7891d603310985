package httperrors

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sir_venger/notes_lite/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWrite(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantLogged bool
	}{
		{name: "not found", err: fmt.Errorf("%q: %w", "x", models.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "already exists", err: models.ErrAlreadyExists, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: models.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "storage", err: fmt.Errorf("%w: disk on fire: %w", models.ErrStorage, errors.New("EIO")), wantStatus: http.StatusInternalServerError, wantLogged: true},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantLogged: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logrus.New()
			log.SetOutput(&buf)

			rec := httptest.NewRecorder()
			Write(rec, log, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantLogged {
				assert.Contains(t, buf.String(), "storage failure")
				assert.Equal(t, internalErrorText+"\n", rec.Body.String())
				assert.NotContains(t, rec.Body.String(), "disk on fire")
				return
			}
			assert.Empty(t, buf.String())
		})
	}
}
