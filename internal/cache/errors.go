package cache

import "errors"

// Ошибки кэша.
var (
	// ErrConfigFormat — файл кэша существует, но не разбирается
	// или не содержит ожидаемой структуры.
	ErrConfigFormat = errors.New("invalid pipeline cache format")

	// ErrCacheWrite — не удалось сохранить кэш на диск.
	ErrCacheWrite = errors.New("pipeline cache write failed")
)

// FormatError — ошибка формата файла кэша с контекстом.
type FormatError struct {
	Path    string // путь к файлу кэша
	Message string // описание ошибки
	Err     error  // исходная ошибка (например, *json.SyntaxError)
}

// Error реализует интерфейс error.
func (e *FormatError) Error() string {
	msg := e.Path + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap возвращает ErrConfigFormat и исходную ошибку.
func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfigFormat}
	}
	return []error{ErrConfigFormat, e.Err}
}

func newFormatError(path, message string, err error) *FormatError {
	return &FormatError{Path: path, Message: message, Err: err}
}
