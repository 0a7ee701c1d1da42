package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	articledomain "github.com/openfaktura/backend/internal/article/domain"
	companydomain "github.com/openfaktura/backend/internal/company/domain"
	invoicedomain "github.com/openfaktura/backend/internal/invoice/domain"
	tenantdomain "github.com/openfaktura/backend/internal/tenant/domain"
	userdomain "github.com/openfaktura/backend/internal/user/domain"
	"github.com/openfaktura/backend/pkg/db"
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

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	var conflict *db.ConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflict.Message,
			Errors: []ValidationError{
				{
					Field:   conflict.Field,
					Code:    "conflict",
					Message: conflict.Message,
				},
			},
		}
	}

	switch {
	case errors.Is(err, tenantdomain.ErrInUse):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "Tenant still has companies and cannot be deleted",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: notFoundMessage(err),
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
	case errors.Is(err, ErrInvalidRequest):
		return true
	case errors.Is(err, tenantdomain.ErrInvalidName),
		errors.Is(err, tenantdomain.ErrInvalidID):
		return true
	case errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidPassword),
		errors.Is(err, userdomain.ErrInvalidRole),
		errors.Is(err, userdomain.ErrInvalidID):
		return true
	case errors.Is(err, companydomain.ErrInvalidBusinessName),
		errors.Is(err, companydomain.ErrInvalidBusinessType),
		errors.Is(err, companydomain.ErrInvalidIdentification),
		errors.Is(err, companydomain.ErrInvalidRegistrationDate),
		errors.Is(err, companydomain.ErrInvalidID):
		return true
	case errors.Is(err, articledomain.ErrInvalidName),
		errors.Is(err, articledomain.ErrInvalidVatCode),
		errors.Is(err, articledomain.ErrInvalidPrice),
		errors.Is(err, articledomain.ErrInvalidID):
		return true
	case errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrNoItems),
		errors.Is(err, invoicedomain.ErrInvalidQuantity),
		errors.Is(err, invoicedomain.ErrInvalidIssueDate):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	var articleMissing *invoicedomain.ArticleNotFoundError
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, tenantdomain.ErrNotFound),
		errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, companydomain.ErrNotFound),
		errors.Is(err, articledomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrCompanyNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	case errors.As(err, &articleMissing):
		return true
	default:
		return false
	}
}

func notFoundMessage(err error) string {
	var articleMissing *invoicedomain.ArticleNotFoundError
	switch {
	case errors.As(err, &articleMissing):
		return articleMissing.Error()
	case errors.Is(err, invoicedomain.ErrCompanyNotFound):
		return "Issuer or recipient company not found"
	case errors.Is(err, tenantdomain.ErrNotFound):
		return "Tenant not found"
	case errors.Is(err, userdomain.ErrNotFound):
		return "User not found"
	case errors.Is(err, companydomain.ErrNotFound):
		return "Company not found"
	case errors.Is(err, articledomain.ErrNotFound):
		return "Article not found"
	case errors.Is(err, invoicedomain.ErrNotFound):
		return "Invoice not found"
	default:
		return "not found"
	}
}

func validationErrorField(code string) string {
	switch code {
	case "invalid_request":
		return "request"
	default:
		if len(code) > len("invalid_") && code[:len("invalid_")] == "invalid_" {
			return code[len("invalid_"):]
		}
		return ""
	}
}

// classifyErrorForLog tags request-log entries with a coarse error family.
func classifyErrorForLog(err error) (string, string) {
	var conflict *db.ConflictError
	switch {
	case err == nil:
		return "", ""
	case asValidationErrors(err) != nil, isValidationError(err):
		return "validation", err.Error()
	case errors.As(err, &conflict):
		return "conflict", conflict.Field
	case isNotFoundError(err):
		return "not_found", err.Error()
	default:
		return "internal", err.Error()
	}
}
