package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
	"github.com/vancomm/minefield/internal/store"
)

func TestStatusCode(t *testing.T) {
	_, parseErr := ParsePosition(url.Values{"row": {"1"}})
	require.Error(t, parseErr)

	tests := []struct {
		err  error
		code int
	}{
		{parseErr, http.StatusBadRequest},
		{&mines.ConfigError{}, http.StatusBadRequest},
		{&mines.OutOfBoundsError{}, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", store.ErrNotFound), http.StatusNotFound},
		{session.ErrFinished, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, test := range tests {
		assert.Equal(t, test.code, statusCode(test.err), test.err.Error())
	}
}

func TestParseNewGameDTO(t *testing.T) {
	defaults := mines.Params{Height: 9, Width: 9, MineCount: 10}

	p, err := ParseNewGameDTO(url.Values{}, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, p)

	p, err = ParseNewGameDTO(url.Values{"mine_count": {"40"}, "other": {"x"}}, defaults)
	require.NoError(t, err)
	assert.Equal(t, mines.Params{Height: 9, Width: 9, MineCount: 40}, p)

	_, err = ParseNewGameDTO(url.Values{"width": {"wide"}}, defaults)
	assert.Error(t, err)
}

func TestParsePosition(t *testing.T) {
	pos, err := ParsePosition(url.Values{"row": {"2"}, "col": {"7"}})
	require.NoError(t, err)
	assert.Equal(t, PositionDTO{Row: 2, Col: 7}, pos)

	_, err = ParsePosition(url.Values{"col": {"7"}})
	assert.Error(t, err)
}

func TestSendErrorOrLog(t *testing.T) {
	w := httptest.NewRecorder()
	SendErrorOrLog(w, nil, http.StatusTeapot, errors.New("nope"))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "nope"}`, w.Body.String())
}
