package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/draymaster/tripplanner/internal/platform/apperr"
)

// apiResponse is the envelope every endpoint replies with.
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, apiResponse{Success: true, Message: message, Data: data})
}

func errorResponse(c *gin.Context, statusCode int, message string, err error) {
	resp := apiResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode, resp)
}

func validationErrorResponse(c *gin.Context, err error) {
	var messages []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			messages = append(messages, validationFieldMessage(fe))
		}
	} else {
		messages = append(messages, err.Error())
	}
	c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "validation failed", Error: messages})
}

func validationFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// errToStatus maps an apperr.Error's code to an HTTP status.
func errToStatus(err error) int {
	appErr, ok := err.(*apperr.Error)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case "INVALID_INPUT":
		return http.StatusBadRequest
	case "NOT_FOUND":
		return http.StatusNotFound
	case "UPSTREAM_UNAVAILABLE":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
