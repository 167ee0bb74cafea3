package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthErrorMessages(t *testing.T) {
	assert.Equal(t, "no session found, please log in", NewAuthMissing().Error())
	assert.Equal(t, "session expired, please log in again", NewAuthExpired().Error())
}

func TestAuthReasonPredicates(t *testing.T) {
	missing := NewAuthMissing()
	expired := NewAuthExpired()

	assert.True(t, IsAuthMissing(missing))
	assert.False(t, IsAuthExpired(missing))
	assert.True(t, IsAuthExpired(expired))
	assert.False(t, IsAuthMissing(expired))

	assert.False(t, IsAuthMissing(errors.New("unrelated")))
	assert.False(t, IsAuthExpired(nil))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("refresh failed: %w", NewAuthMissing())
	assert.True(t, IsAuthMissing(wrapped))
}

func TestServerErrorMessage(t *testing.T) {
	withMessage := NewServerError(422, "title too long")
	assert.Equal(t, "title too long", withMessage.Error())

	blank := NewServerError(502, "")
	assert.Equal(t, "server returned status 502", blank.Error())
}

func TestNetworkErrorHidesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewNetworkError(cause)

	assert.Equal(t, "network error, please check your connection", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "no session found, please log in", UserMessage(NewAuthMissing()))
	assert.Equal(t, "ticket not found", UserMessage(NewServerError(404, "ticket not found")))
	assert.Equal(t, "network error, please check your connection",
		UserMessage(NewNetworkError(errors.New("timeout"))))
	assert.Equal(t, "something else", UserMessage(errors.New("something else")))
}
