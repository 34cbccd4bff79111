package domain

import (
	"errors"
	"fmt"
)

// CatalogError — типизированная ошибка транспортного уровня.
// Исходная причина (если есть) доступна через errors.Unwrap.
type CatalogError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	cause      error
}

func NewCatalogError(kind ErrorKind, message string, statusCode int, cause error) *CatalogError {
	return &CatalogError{
		Kind:       kind,
		Message:    message,
		StatusCode: statusCode,
		cause:      cause,
	}
}

func (e *CatalogError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("catalog error (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("catalog error (%s): %s", e.Kind, e.Message)
}

func (e *CatalogError) Unwrap() error { return e.cause }

// ErrorKindOf извлекает вид ошибки. Для неклассифицированных ошибок
// возвращает ErrorKindNetworkFailure как самый безопасный вариант.
func ErrorKindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	var ce *CatalogError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ErrorKindNetworkFailure
}
