package audit

import "context"

type actorKey struct{}

type actor struct {
	name       string
	clientInfo string
}

// WithActor attaches who is acting, and from where, to ctx
func WithActor(ctx context.Context, name, clientInfo string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor{name: name, clientInfo: clientInfo})
}

// ActorFrom returns the actor attached by WithActor
func ActorFrom(ctx context.Context) (name, clientInfo string) {
	if a, ok := ctx.Value(actorKey{}).(actor); ok {
		return a.name, a.clientInfo
	}
	return "", ""
}
