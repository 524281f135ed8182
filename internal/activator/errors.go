package activator

import "errors"

// ErrActivation — удалённый вызов активации завершился ошибкой.
var ErrActivation = errors.New("pipeline activation failed")
