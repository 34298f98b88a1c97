package session

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const SessionKey contextKey = "session"

// Header carries the session id in both directions.
const Header = "X-Session-Id"

var ErrNoSession = errors.New("session not found")

// CurrentId retrieves the current session's ID from the context. Returns ErrNoSession if ID not present in context.
func CurrentId(ctx context.Context) (string, error) {
	id, ok := ctx.Value(SessionKey).(string)
	if !ok || id == "" {
		log.Trace("session not found in context")
		return "", ErrNoSession
	}
	return id, nil
}

func WithId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionKey, id)
}
