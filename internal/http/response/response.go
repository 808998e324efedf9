package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/noticehub/domain"
)

// Envelope is the uniform response shape. code == 0 means success; every
// error path still answers with this shape, never a bare 500.
type Envelope struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// Envelope codes. Negative values are errors; -99 is reserved for
// recovered panics, matching the historical backend.
const (
	CodeOK               = 0
	CodeInvalidParams    = -1
	CodeNotAuthenticated = -2
	CodeForbidden        = -3
	CodeNotFound         = -4
	CodeUpstreamFailure  = -5
	CodeStorageFailure   = -6
	CodeInternal         = -99
)

// OK writes a success envelope
func OK(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Code: CodeOK, Msg: msg, Data: data})
}

// Fail writes an error envelope with the given HTTP status
func Fail(c *gin.Context, status, code int, msg string) {
	c.JSON(status, Envelope{Code: code, Msg: msg})
}

// FailErr maps a domain error to its envelope code and HTTP status
func FailErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrNotAuthenticated):
		Fail(c, http.StatusUnauthorized, CodeNotAuthenticated, "not logged in or session expired")
	case errors.Is(err, domain.ErrInvalidParams):
		Fail(c, http.StatusBadRequest, CodeInvalidParams, "invalid parameters")
	case errors.Is(err, domain.ErrForbidden):
		Fail(c, http.StatusForbidden, CodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		Fail(c, http.StatusNotFound, CodeNotFound, "not found")
	case errors.Is(err, domain.ErrUserNotFound):
		Fail(c, http.StatusNotFound, CodeNotFound, "user not found")
	case errors.Is(err, domain.ErrPlatformExchange):
		Fail(c, http.StatusBadGateway, CodeUpstreamFailure, "platform exchange failed")
	case errors.Is(err, domain.ErrStorage):
		Fail(c, http.StatusInternalServerError, CodeStorageFailure, "storage failure")
	default:
		Fail(c, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
