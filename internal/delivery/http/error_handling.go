package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storykeep/internal/delivery/http/middleware"
	"storykeep/internal/model"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp model.ErrorResponse

	switch {
	case errors.Is(err, model.ErrBadRequest), errors.Is(err, model.ErrInvalidStatus), errors.Is(err, model.ErrUnknownEntryKind):
		statusCode = http.StatusBadRequest
		errResp = model.ErrorResponse{Code: model.ErrCodeBadRequest, Message: err.Error()}
	case errors.Is(err, model.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		errResp = model.ErrorResponse{Code: model.ErrCodeWrongCredentials, Message: "Invalid username or password"}
	case errors.Is(err, model.ErrNoActiveSession):
		statusCode = http.StatusUnauthorized
		errResp = model.ErrorResponse{Code: model.ErrCodeTokenInvalid, Message: "Not logged in"}
	case errors.Is(err, model.ErrUnauthorized):
		statusCode = http.StatusForbidden
		errResp = model.ErrorResponse{Code: model.ErrCodeForbidden, Message: "Operation not permitted"}
	case errors.Is(err, model.ErrUserAlreadyExists):
		statusCode = http.StatusConflict
		errResp = model.ErrorResponse{Code: model.ErrCodeDuplicateUser, Message: "Username already exists"}
	case errors.Is(err, model.ErrNotFound):
		statusCode = http.StatusNotFound
		errResp = model.ErrorResponse{Code: model.ErrCodeNotFound, Message: "Resource not found"}
	case errors.Is(err, model.ErrCreationFailed):
		statusCode = http.StatusInternalServerError
		errResp = model.ErrorResponse{Code: model.ErrCodeCreationFailed, Message: "Nothing was created"}
	case errors.Is(err, model.ErrConnectionUnavailable):
		statusCode = http.StatusServiceUnavailable
		errResp = model.ErrorResponse{Code: model.ErrCodeUnavailable, Message: "Storage is unavailable"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = model.ErrorResponse{Code: model.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	errResp.Messages = middleware.Messages(c)
	c.AbortWithStatusJSON(statusCode, errResp)
}

// respondResult writes a boolean boundary outcome with the request's messages.
func respondResult(c *gin.Context, ok bool) {
	c.JSON(http.StatusOK, model.Result{OK: ok, Messages: middleware.Messages(c)})
}

// listResponse wraps a collection with the request's messages.
type listResponse[T any] struct {
	Items    []T      `json:"items"`
	Messages []string `json:"messages,omitempty"`
}

func respondList[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, listResponse[T]{Items: items, Messages: middleware.Messages(c)})
}
