package manager

// State — состояние Manager.
//
// Жизненный цикл:
//
//	UNINITIALIZED → BUILDING → READY
//	              ↘ LOADING  ↗
type State string

const (
	// StateUninitialized — Manager ещё не получил кэш.
	StateUninitialized State = "UNINITIALIZED"

	// StateBuilding — кэш собирается из реестра.
	StateBuilding State = "BUILDING"

	// StateLoading — кэш читается из файла.
	StateLoading State = "LOADING"

	// StateReady — кэш в памяти, доступны операции чтения.
	StateReady State = "READY"
)
