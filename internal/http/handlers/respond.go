package handlers

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Error bodies always carry a message and a stack slot. Outside dev the
// stack is masked so internals never leak to clients.
const stackMask = "🥞"

var devMode bool

// SetEnv must run once at startup, before the router serves traffic.
func SetEnv(env string) {
	devMode = env == "dev"
}

func stackTrace() string {
	if devMode {
		return string(debug.Stack())
	}

	return stackMask
}

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"message": message,
		"stack":   stackTrace(),
	})
}

// RespondValidation reports every violation at once so a client can fix a
// form in a single round trip.
func RespondValidation(ctx *gin.Context, message string, fields []FieldError) {
	ctx.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": message,
		"stack":   stackTrace(),
		"fields":  fields,
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"message": message,
		"stack":   stackTrace(),
		"details": details,
	})
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message)
}

func RespondForbidden(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusForbidden, message)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, message)
}

// logErr records the real failure server-side; the client only ever sees
// the sanitized envelope.
func logErr(ctx *gin.Context, op string, err error) {
	reqID, _ := ctx.Get("request_id")

	slog.Default().ErrorContext(ctx.Request.Context(), op,
		"error", err,
		"request_id", reqID,
	)
}
