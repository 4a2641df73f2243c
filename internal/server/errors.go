package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	accountingdomain "github.com/smallbiznis/sentra/internal/accounting/domain"
	assetdomain "github.com/smallbiznis/sentra/internal/asset/domain"
	authdomain "github.com/smallbiznis/sentra/internal/auth/domain"
	customerdomain "github.com/smallbiznis/sentra/internal/customer/domain"
	orderdomain "github.com/smallbiznis/sentra/internal/order/domain"
	organizationdomain "github.com/smallbiznis/sentra/internal/organization/domain"
	stockdomain "github.com/smallbiznis/sentra/internal/stock/domain"
	supplierdomain "github.com/smallbiznis/sentra/internal/supplier/domain"
	"github.com/smallbiznis/sentra/pkg/tenantctx"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var missingErr *orderdomain.MissingFieldsError
	if errors.As(err, &missingErr) {
		fields := make([]ValidationError, 0, len(missingErr.Fields))
		for _, f := range missingErr.Fields {
			fields = append(fields, ValidationError{
				Field:   f,
				Code:    "required",
				Message: "required field",
			})
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: missingErr.Error(),
			Errors:  fields,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	var creationErr *orderdomain.OrderCreationError

	switch {
	case errors.Is(err, tenantctx.ErrMissingTenant):
		return http.StatusBadRequest, errorPayload{
			Type:    "missing_tenant",
			Message: "organization context required",
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrTokenExpired):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, orderdomain.ErrDuplicateOrderNumber):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.As(err, &creationErr):
		return http.StatusInternalServerError, errorPayload{
			Type:    "order_creation_failed",
			Message: fmt.Sprintf("order creation failed at %s: %v", creationErr.Stage, creationErr.Err),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, organizationdomain.ErrInvalidName),
		errors.Is(err, organizationdomain.ErrInvalidOwner),
		errors.Is(err, supplierdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, assetdomain.ErrInvalidName),
		errors.Is(err, stockdomain.ErrInvalidName),
		errors.Is(err, stockdomain.ErrInvalidQuantity),
		errors.Is(err, accountingdomain.ErrInvalidType),
		errors.Is(err, accountingdomain.ErrInvalidAmount),
		errors.Is(err, orderdomain.ErrInvalidOrderNumber):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, organizationdomain.ErrNotFound),
		errors.Is(err, supplierdomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, assetdomain.ErrNotFound),
		errors.Is(err, stockdomain.ErrNotFound),
		errors.Is(err, accountingdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog keeps expected request failures out of the error logs.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	var missingErr *orderdomain.MissingFieldsError

	switch {
	case asValidationErrors(err) != nil, errors.As(err, &missingErr), isValidationError(err):
		return "validation", validationErrorCode(err)
	case isNotFoundError(err):
		return "not_found", ""
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrTokenExpired):
		return "unauthorized", ""
	case errors.Is(err, orderdomain.ErrDuplicateOrderNumber), errors.Is(err, authdomain.ErrUserExists):
		return "conflict", err.Error()
	case errors.Is(err, tenantctx.ErrMissingTenant):
		return "missing_tenant", ""
	default:
		return "internal", ""
	}
}
