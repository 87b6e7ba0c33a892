package handler

import (
	"github.com/gin-gonic/gin"

	"accountd/internal/pkg/response"
	"accountd/internal/service"
)

type AuthHandler struct {
	registration *service.RegistrationService
	verification *service.VerificationService
	signin       *service.SignInService
}

func NewAuthHandler(registration *service.RegistrationService, verification *service.VerificationService, signin *service.SignInService) *AuthHandler {
	return &AuthHandler{registration: registration, verification: verification, signin: signin}
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "invalid", "invalid request")
		return
	}
	accountID, err := h.registration.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.DateOfBirth)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"status":     "PENDING",
		"message":    "verification email sent",
		"account_id": accountID,
	})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	accountID := c.Param("id")
	rawToken := c.Param("token")
	if err := h.verification.Verify(c.Request.Context(), accountID, rawToken); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"status":  "verified",
		"message": "email verified successfully",
	})
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "invalid", "invalid request")
		return
	}
	profile, err := h.signin.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"status":  "SUCCESS",
		"message": "signin successful",
		"account": profile,
	})
}
