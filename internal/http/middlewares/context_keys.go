package middlewares

const (
	CtxRequestID = "request_id"
	CtxClaims    = "auth.claims"
)

// stackMask is what error bodies carry in place of a stack trace; the
// handlers package substitutes a real trace in dev.
const stackMask = "🥞"
