package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/noticehub/domain"
	"github.com/you/noticehub/internal/http/response"
)

// AuthHandlers handles login, session status, phone binding and logout
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest represents the code-exchange request
type LoginRequest struct {
	Code string `json:"code" binding:"required"`
}

// BindPhoneRequest carries the platform-encrypted phone payload
type BindPhoneRequest struct {
	EncryptedData string `json:"encryptedData" binding:"required"`
	IV            string `json:"iv" binding:"required"`
}

// Login handles POST /login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.CodeInvalidParams, "missing code parameter")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Code)
	if err != nil {
		response.FailErr(c, err)
		return
	}

	response.OK(c, "login successful", gin.H{
		"token":         result.Token,
		"needPhoneBind": result.NeedPhoneBind,
		"userInfo":      result.Profile,
	})
}

// Status handles GET /session/status
func (h *AuthHandlers) Status(c *gin.Context) {
	result, err := h.authSvc.CheckStatus(c.Request.Context(), tokenFrom(c))
	if err != nil {
		response.FailErr(c, err)
		return
	}

	response.OK(c, "logged in", gin.H{
		"needPhoneBind": result.NeedPhoneBind,
		"userInfo":      result.Profile,
	})
}

// BindPhone handles POST /phone/bind
func (h *AuthHandlers) BindPhone(c *gin.Context) {
	var req BindPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.CodeInvalidParams, "missing encryptedData or iv")
		return
	}

	result, err := h.authSvc.BindPhone(c.Request.Context(), tokenFrom(c), req.EncryptedData, req.IV)
	if err != nil {
		response.FailErr(c, err)
		return
	}

	response.OK(c, "phone number bound", gin.H{
		"phoneNumber": result.PhoneNumber,
		"userInfo":    result.Profile,
	})
}

// Logout handles POST /logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), tokenFrom(c)); err != nil {
		response.FailErr(c, err)
		return
	}
	response.OK(c, "logged out", nil)
}

// tokenFrom mirrors the middleware's token transport: header first,
// query fallback.
func tokenFrom(c *gin.Context) string {
	if tok := c.GetHeader("token"); tok != "" {
		return tok
	}
	return c.Query("token")
}
