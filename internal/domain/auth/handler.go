package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boqbase/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrEmailTaken:
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
		case ErrRoleNotAllowed:
			response.Error(c, http.StatusBadRequest, "ROLE_NOT_ALLOWED", "Role cannot be self-assigned")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  u,
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  u,
		"token": token,
	})
}
