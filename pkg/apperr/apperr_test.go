package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Auth("bad credentials"), http.StatusUnauthorized},
		{Forbidden("no access"), http.StatusForbidden},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("duplicate"), http.StatusConflict},
		{RateLimited("slow down"), http.StatusTooManyRequests},
		{Internal("oops", errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err))
	}
}

func TestClientMessage_HidesInternalDetails(t *testing.T) {
	err := Internal("An unexpected error occurred", errors.New("dial tcp 10.0.0.1:3306: connection refused"))

	msg := ClientMessage(err)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "10.0.0.1")
}

func TestClientMessage_PlainError(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", ClientMessage(errors.New("raw detail")))
}

func TestClientMessage_BusinessError(t *testing.T) {
	assert.Equal(t, "Product not found", ClientMessage(NotFound("Product not found")))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", Conflict("duplicate email"))
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Internal("wrapped", cause)
	assert.True(t, errors.Is(err, cause))
}
