package apperrors

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("запись не найдена")
	ErrForbidden    = errors.New("операция недоступна")
	ErrConflict     = errors.New("конфликт данных")
	ErrUnauthorized = errors.New("ошибка аутентификации")
)

func NotFound(msg string) error {
	return errors.Wrap(ErrNotFound, msg)
}

func NotFoundf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

func Forbidden(msg string) error {
	return errors.Wrap(ErrForbidden, msg)
}

func Conflict(msg string) error {
	return errors.Wrap(ErrConflict, msg)
}

func Unauthorized(msg string) error {
	return errors.Wrap(ErrUnauthorized, msg)
}

// ValidationError - ошибки валидации в разрезе полей: [поле]сообщение
type ValidationError map[string]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "ошибка валидации: " + strings.Join(parts, "; ")
}

// OrNil возвращает nil, если ошибок по полям нет
func (v ValidationError) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func AsValidation(err error) (ValidationError, bool) {
	var vErr ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// Message - текст ошибки без обертки sentinel-ошибки
func Message(err error) string {
	for _, sentinel := range []error{ErrNotFound, ErrForbidden, ErrConflict, ErrUnauthorized} {
		if errors.Is(err, sentinel) {
			return strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
		}
	}
	return err.Error()
}
