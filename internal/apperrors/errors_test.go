package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:         http.StatusBadRequest,
		KindSelfAction:         http.StatusBadRequest,
		KindUnauthenticated:    http.StatusUnauthorized,
		KindInvalidCredentials: http.StatusUnauthorized,
		KindInvalidToken:       http.StatusUnauthorized,
		KindExpiredToken:       http.StatusUnauthorized,
		KindAccountDeactivated: http.StatusForbidden,
		KindForbidden:          http.StatusForbidden,
		KindNotFound:           http.StatusNotFound,
		KindDuplicateEmail:     http.StatusConflict,
		KindInternal:           http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.Status(), kind.Label())
	}
}

func TestAs_PreservesKnownErrors(t *testing.T) {
	orig := New(KindNotFound, "User not found")
	wrapped := fmt.Errorf("handler: %w", orig)

	got := As(wrapped)
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, "User not found", got.Message)
}

func TestAs_WrapsUnknownErrorsAsInternal(t *testing.T) {
	got := As(errors.New("connection refused"))
	assert.Equal(t, KindInternal, got.Kind)
	assert.ErrorContains(t, got.Err, "connection refused")
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindInternal, "failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed: boom", err.Error())
}
