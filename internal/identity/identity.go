package identity

import "context"

type ctxKey string

const actorKey ctxKey = "actor"

// Actor is the authenticated caller as decoded from its token. It travels on
// the request context only, never in package state, so concurrent requests
// cannot observe each other's role.
type Actor struct {
	UserID int64
	Email  string
	Role   string
}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey).(Actor)

	return a, ok && a.Email != ""
}
