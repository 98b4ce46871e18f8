package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "brokerdex/pkg/errors"
	"brokerdex/pkg/logger"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message *string     `json:"message"`
	Data    interface{} `json:"data"`
	Meta    interface{} `json:"meta"`
}

// PaginationMeta is carried in Envelope.Meta for list endpoints.
type PaginationMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func SuccessMessage(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: &message, Data: data})
}

func Created(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: &message, Data: data})
}

func Paginated(c echo.Context, items interface{}, page, pageSize int, total int64) error {
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    items,
		Meta:    PaginationMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

// Error renders any error as an envelope. Validator errors become 400s with a
// field map in meta, AppErrors keep their status, everything else collapses to
// a generic 500 so internals never reach the client.
func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed: %v", appErr)
		}
		msg := appErr.Message
		return c.JSON(appErr.Status, Envelope{Success: false, Message: &msg})
	}

	logger.Error("unexpected error: %v", err)
	msg := "An unexpected error occurred"
	return c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: &msg})
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	fields := make(map[string]string, len(validationErr))
	for _, fe := range validationErr {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]

		var message string
		switch fe.Tag() {
		case "required":
			message = field + " is required"
		case "min":
			message = field + " must be at least " + fe.Param()
		case "max":
			message = field + " must be at most " + fe.Param()
		case "gte":
			message = field + " must be at least " + fe.Param()
		case "lte":
			message = field + " must be at most " + fe.Param()
		case "oneof":
			message = field + " must be one of: " + fe.Param()
		default:
			message = field + " is invalid"
		}
		fields[field] = message
	}

	msg := "Validation error"
	return c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: &msg,
		Meta:    fields,
	})
}
