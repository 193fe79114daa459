package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Page is a paginated list response. Data is never null.
type Page[T any] struct {
	Data       []T             `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// List is an unpaginated list response.
type List[T any] struct {
	Data []T `json:"data"`
}

type Success struct {
	Success bool `json:"success"`
}

func JSON(ctx *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

func Paginated[T any](ctx *gin.Context, items []T, meta pagination.Meta) {
	if items == nil {
		items = []T{}
	}
	ctx.JSON(http.StatusOK, Page[T]{Data: items, Pagination: meta})
}

func Items[T any](ctx *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	ctx.JSON(http.StatusOK, List[T]{Data: items})
}

func OK(ctx *gin.Context, status int) {
	ctx.JSON(status, Success{Success: true})
}

func NoContent(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

// Error aborts the chain and writes {"error": message}.
func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{Error: message})
}
