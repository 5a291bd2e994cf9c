package errors

import (
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassificationByWrappedType(t *testing.T) {
	transient := NewTransientError(errors.New("poll failed"), "try again next cycle")
	permanent := NewPermanentError(errors.New("bad steam id"), "check credentials")
	degraded := NewDegradedError(errors.New("steam down"), "", "Steam API unreachable")

	assert.True(t, IsTransient(transient))
	assert.False(t, IsTransient(permanent))
	assert.True(t, IsDegraded(degraded))

	// Wrapping preserves the classification.
	assert.True(t, IsTransient(fmt.Errorf("save: %w", transient)))
	assert.True(t, IsDegraded(fmt.Errorf("fetch: %w", degraded)))
}

func TestBareErrorClassification(t *testing.T) {
	assert.True(t, IsTransient(syscall.ECONNREFUSED))
	assert.True(t, IsTransient(errors.New("connection reset by peer")))
	assert.False(t, IsTransient(errors.New("unauthorized")))
	assert.False(t, IsTransient(nil))
}

func TestFallbackLabel(t *testing.T) {
	degraded := NewDegradedError(errors.New("steam down"), "", "Steam API unreachable")

	assert.Equal(t, "Steam API unreachable", FallbackLabel(degraded, "default"))
	assert.Equal(t, "default", FallbackLabel(errors.New("plain"), "default"))

	// A degraded error without a label still falls back.
	unlabeled := NewDegradedError(errors.New("partial"), "", "")
	assert.Equal(t, "default", FallbackLabel(unlabeled, "default"))
}

func TestUserFacingMessages(t *testing.T) {
	withMessage := NewTransientError(errors.New("dial tcp: timeout"), "Steam is slow right now")
	assert.Equal(t, "Steam is slow right now", withMessage.Error())

	withoutMessage := NewPermanentError(errors.New("bad key"), "")
	assert.Contains(t, withoutMessage.Error(), "bad key")
}

func TestIsTransientHTTPStatus(t *testing.T) {
	assert.True(t, IsTransientHTTPStatus(http.StatusTooManyRequests))
	assert.True(t, IsTransientHTTPStatus(http.StatusServiceUnavailable))
	assert.False(t, IsTransientHTTPStatus(http.StatusUnauthorized))
	assert.False(t, IsTransientHTTPStatus(http.StatusOK))
}
