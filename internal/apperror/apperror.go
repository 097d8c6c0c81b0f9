package apperror

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибки бизнес-уровня.
// Каждая ошибка терминальна для запроса: обработчик маппит вид
// на HTTP-статус, повторов и восстановления нет.
type Kind int

const (
	KindValidation Kind = iota + 1 // некорректный или неполный ввод
	KindNotFound                   // сущность не найдена по id или натуральному ключу
	KindConflict                   // нарушение уникальности или бизнес-правила
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error — ошибка приложения с видом и сообщением для клиента.
// Err хранит необязательную низкоуровневую причину (например, ошибку бд).
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation создает ошибку некорректного ввода.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound создает ошибку отсутствующей сущности.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict создает ошибку нарушения уникальности или бизнес-правила.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Wrap оборачивает низкоуровневую причину в ошибку приложения.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsValidation сообщает, является ли err ошибкой валидации.
func IsValidation(err error) bool {
	return hasKind(err, KindValidation)
}

// IsNotFound сообщает, является ли err ошибкой отсутствующей сущности.
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

// IsConflict сообщает, является ли err ошибкой конфликта.
func IsConflict(err error) bool {
	return hasKind(err, KindConflict)
}

func hasKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
