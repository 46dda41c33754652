package entity

import (
	"context"
)

type CtxKey int

const (
	CtxKeyActor CtxKey = iota
)

const (
	ActorSystem = "system"
)

func CtxWithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, CtxKeyActor, actor)
}

// ActorFromCtx returns the actor stored in the context or ActorSystem.
func ActorFromCtx(ctx context.Context) string {
	actor, ok := ctx.Value(CtxKeyActor).(string)
	if !ok || actor == "" {
		return ActorSystem
	}

	return actor
}
