// Package response renders the wire contract: success payloads pass through
// as-is, errors collapse to the taxonomy's status codes with fixed bodies.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sukab-restaurant/tableside/pkg/errorbank"
)

// serverErrorMessage is the only text a caller ever sees for a storage-side
// failure; the real cause is logged, never exposed.
const serverErrorMessage = "An unknown server error has occurred, please try again later."

// errorBody is the client-error/server-error JSON shape.
type errorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Builder helps construct successful HTTP responses.
type Builder struct {
	ctx    echo.Context
	status int
	data   any
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx, status: http.StatusOK}
}

// WithStatus overrides the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	if status > 0 {
		b.status = status
	}
	return b
}

// WithData attaches the success payload.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	return b
}

// Build emits the HTTP response.
func (b *Builder) Build() error {
	return b.ctx.JSON(b.status, b.data)
}

// RenderError translates an error into its client-visible form and logs
// storage faults exactly once, here at the boundary. Validation failures and
// not-found outcomes are never logged as faults.
func RenderError(err error, c echo.Context, logger *zap.Logger) {
	if c.Response().Committed {
		return
	}

	appErr := errorbank.From(err)
	switch appErr.Kind() {
	case errorbank.KindValidation:
		_ = c.JSON(http.StatusBadRequest, errorBody{Error: true, Message: appErr.Message()})
	case errorbank.KindNotFound:
		_ = c.NoContent(http.StatusNotFound)
	default:
		logger.Error("request failed",
			zap.String("kind", string(appErr.Kind())),
			zap.Error(appErr),
		)
		_ = c.JSON(http.StatusInternalServerError, errorBody{Error: true, Message: serverErrorMessage})
	}
}
