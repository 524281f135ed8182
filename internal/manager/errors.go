package manager

import "errors"

// ErrNoSelection — ни селектор, ни интерактивный выбор не указали pipeline.
var ErrNoSelection = errors.New("no valid pipeline selected")
