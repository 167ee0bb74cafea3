package auth

import (
	"context"
	"errors"
	"os"
	"strings"
)

// ErrNoCredential signals that no session token is stored. The API
// client maps it to the absent-credential error and skips the network
// attempt entirely.
var ErrNoCredential = errors.New("no credential stored")

// CredentialSource yields the session token persisted by the external
// login flow. Implementations only read; nothing in this module ever
// writes a credential.
type CredentialSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticSource returns a fixed token. An empty value behaves like a
// missing credential, which makes it convenient in tests.
type StaticSource string

// Token implements CredentialSource.
func (s StaticSource) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoCredential
	}
	return string(s), nil
}

// EnvSource reads the token from an environment variable, falling back
// to a token file when the variable is empty.
type EnvSource struct {
	Var  string
	File string
}

// Token implements CredentialSource.
func (s EnvSource) Token(context.Context) (string, error) {
	if s.Var != "" {
		if val := strings.TrimSpace(os.Getenv(s.Var)); val != "" {
			return val, nil
		}
	}
	if s.File != "" {
		data, err := os.ReadFile(s.File)
		if err == nil {
			if token := strings.TrimSpace(string(data)); token != "" {
				return token, nil
			}
		}
	}
	return "", ErrNoCredential
}
