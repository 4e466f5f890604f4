package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/fleetops/fleet-logistics-api/pkg/errors"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope is the uniform response contract for every business route.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Details []string    `json:"details,omitempty"`
}

// JSON sends a success response with the given HTTP status.
func JSON(c *gin.Context, status int, message string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Status: statusSuccess, Message: message, Data: data})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

// Created responds with HTTP 201.
func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{
		Status:  statusError,
		Message: appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}
