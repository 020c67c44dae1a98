package handler

type ContextKey string

var (
	ActorCtxKey      ContextKey = "actor"
	AssignmentCtxKey ContextKey = "assignment"
)
