package middleware

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/cookbook/backend/internal/domain/shared/valueobject"
	"github.com/cookbook/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "request_id"

// SetupValidator configures the request validator with custom tags
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// difficulty validates against the closed set of difficulty levels
	_ = v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		return valueobject.IsValidDifficulty(fl.Field().String())
	})
}

// HandleValidationError writes a 400 response for request binding failures
func HandleValidationError(c *gin.Context, err error) {
	requestID := getRequestIDFromContext(c)
	message := "Invalid request body"

	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		message = getValidationMessage(validationErrors[0])
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeValidation, message, requestID))
}

func getRequestIDFromContext(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", e.Field())
	case "difficulty":
		return fmt.Sprintf("Invalid difficulty level: %v. Must be 'easy', 'medium', or 'hard'", e.Value())
	case "min":
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("Field '%s' must be at least %s characters", e.Field(), e.Param())
		}
		return fmt.Sprintf("Field '%s' must be at least %s", e.Field(), e.Param())
	case "url":
		return fmt.Sprintf("Field '%s' must be a valid URL", e.Field())
	default:
		return fmt.Sprintf("Field '%s' is invalid", e.Field())
	}
}
