package httperrors

import (
	"context"
	"errors"
	"net/http"

	"github.com/sir_venger/notes_lite/internal/models"
	"github.com/sirupsen/logrus"
)

const internalErrorText = "internal error"

// Write переводит ошибку стора в HTTP-статус. Детали сбоев хранилища уходят только в лог.
func Write(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrAlreadyExists), errors.Is(err, models.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled):
		log.WithField("err", err).Debug("request cancelled")
		http.Error(w, internalErrorText, http.StatusServiceUnavailable)
	default:
		log.WithField("err", err).Error("storage failure")
		http.Error(w, internalErrorText, http.StatusInternalServerError)
	}
}
