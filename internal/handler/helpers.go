package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "accountd/internal/pkg/errors"
	"accountd/internal/pkg/response"
)

// handleError maps workflow sentinels onto the wire. Anything unmatched is
// an infrastructure failure and goes out as a generic internal error; the
// underlying cause is only logged.
func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case appErr.IsConflict(err):
		response.Error(c, http.StatusConflict, "conflict", appErr.Message(err, "conflict"))
	case appErr.IsNotFound(err):
		response.Error(c, http.StatusNotFound, "notfound", appErr.Message(err, "not found"))
	case errors.Is(err, appErr.ErrExpired):
		response.Error(c, http.StatusGone, "expired", appErr.Message(err, "expired"))
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, "invalid", appErr.Message(err, "invalid request"))
	case errors.Is(err, appErr.ErrNotVerified):
		response.Error(c, http.StatusForbidden, "not_verified", appErr.Message(err, "email not verified"))
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "unauthorized", appErr.Message(err, "invalid credentials"))
	default:
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
}
