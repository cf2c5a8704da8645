package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "User already exists")
	case errors.Is(err, ErrInsufficientCoins):
		RespondError(c, http.StatusBadRequest, "Insufficient coins")
	case errors.Is(err, ErrServerNotFound):
		RespondError(c, http.StatusNotFound, "Server not found")
	case errors.Is(err, ErrServerExpired):
		RespondError(c, http.StatusBadRequest, "Server has expired")
	case errors.Is(err, ErrServerNotActive):
		RespondError(c, http.StatusBadRequest, "Server is not active")
	case errors.Is(err, ErrInvalidPlan):
		RespondError(c, http.StatusBadRequest, "Invalid plan selected")
	case errors.Is(err, ErrInvalidPhoneNumber):
		RespondError(c, http.StatusBadRequest, "Valid phone number required")
	case errors.Is(err, ErrExternalService):
		RespondError(c, http.StatusBadGateway, "Pairing service unavailable")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
