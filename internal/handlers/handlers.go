package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
	"github.com/vancomm/minefield/internal/store"
)

func SendJSON(w http.ResponseWriter, statusCode int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return 0, err
	}
	return sendRaw(w, statusCode, payload)
}

func sendRaw(w http.ResponseWriter, statusCode int, payload []byte) (int, error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(payload)
}

func SendJSONOrLog(
	w http.ResponseWriter,
	log logrus.FieldLogger,
	statusCode int,
	v any,
) {
	if _, err := SendJSON(w, statusCode, v); err != nil {
		log.WithError(err).WithField("data", v).Error("failed to send data")
	}
}

func SendErrorOrLog(
	w http.ResponseWriter,
	log logrus.FieldLogger,
	statusCode int,
	e error,
) {
	if _, err := SendJSON(w, statusCode, wrapError(e)); err != nil {
		log.WithError(err).WithField("sent_error", e).Error("failed to send error message")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// statusCode maps domain errors onto HTTP statuses.
func statusCode(err error) int {
	var multi schema.MultiError
	switch {
	case errors.As(err, &multi),
		errors.Is(err, mines.ErrInvalidConfiguration),
		errors.Is(err, mines.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
