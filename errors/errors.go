package errors

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"

	"github.com/2HgO/webhook-registry/models"
)

type ErrorType string

const (
	ErrNotFound          ErrorType = "ENTRY_NOT_FOUND_ERROR"
	ErrValidation        ErrorType = "VALIDATION_ERROR"
	ErrEntryExists       ErrorType = "ENTRY_EXISTS_ERROR"
	ErrIncompleteWebhook ErrorType = "INCOMPLETE_WEBHOOK_ERROR"
	ErrFailedDependency  ErrorType = "FAILED_DEPENDENCY"
	ErrFatal             ErrorType = "FATAL_ERROR"
)

// mysql error number for duplicate key violations
const erDupEntry = 1062

type AppError struct {
	Code     int       `json:"-"`
	Type     ErrorType `json:"type"`
	Message  string    `json:"message"`
	Internal string    `json:"internal,omitempty"`
}

func (a AppError) Error() string {
	return fmt.Sprintf("%s: %s", a.Type, a.Message)
}

func (a AppError) Serialize(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(a.Code)
	if err := json.NewEncoder(w).Encode(a); err != nil {
		panic(a)
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func HandleDataDBError(err error) AppError {
	if Is(err, sql.ErrNoRows) {
		return NewNotFoundError("resource not found")
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == erDupEntry {
		e := NewEntryExistsError("resource already exists")
		e.Internal = myErr.Message
		return e
	}
	return NewFatalError(err)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	}
	msg := fmt.Sprintf("%s failed on %s", fe.Field(), fe.ActualTag())
	if fe.Param() != "" {
		msg += "=" + fe.Param()
	}
	return msg
}

func HandleBindError(err error) AppError {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return AppError{
			Code:     http.StatusBadRequest,
			Type:     ErrValidation,
			Message:  validationMessage(verrs[0]),
			Internal: err.Error(),
		}
	}
	if Is(err, io.EOF) {
		return NewValidationError("No request body")
	}

	vErr := NewValidationError("invalid request received")
	vErr.Internal = err.Error()

	return vErr
}

func NewValidationError(msg string) AppError {
	return AppError{
		Code:    http.StatusBadRequest,
		Type:    ErrValidation,
		Message: msg,
	}
}

func NewNotFoundError(msg string) AppError {
	return AppError{
		Code:    http.StatusNotFound,
		Type:    ErrNotFound,
		Message: msg,
	}
}

func NewEntryExistsError(msg string) AppError {
	return AppError{
		Code:    http.StatusConflict,
		Type:    ErrEntryExists,
		Message: msg,
	}
}

func NewIncompleteWebhookError() AppError {
	return AppError{
		Code:     http.StatusUnprocessableEntity,
		Type:     ErrIncompleteWebhook,
		Message:  "webhook has no id or token to build its url from",
		Internal: models.ErrIncompleteWebhook.Error(),
	}
}

func NewFatalError(err error) AppError {
	return AppError{
		Code:     http.StatusInternalServerError,
		Type:     ErrFatal,
		Message:  "Oops! something happened on our end.",
		Internal: err.Error(),
	}
}

func NewUnknownError(err any) AppError {
	return NewFatalError(fmt.Errorf("%v", err))
}

func NewFailedDependencyError(msg string) AppError {
	return AppError{
		Code:    http.StatusFailedDependency,
		Type:    ErrFailedDependency,
		Message: msg,
	}
}

func AsAppError(err error) AppError {
	apperr := new(AppError)
	if errors.As(err, apperr) {
		return *apperr
	}
	if Is(err, models.ErrIncompleteWebhook) {
		return NewIncompleteWebhookError()
	}
	return NewFatalError(err)
}
