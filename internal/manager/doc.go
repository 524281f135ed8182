// Package manager владеет кэшем pipelines в памяти процесса.
//
// # Жизненный цикл
//
//	UNINITIALIZED → BUILDING (файла кэша нет) → READY
//	UNINITIALIZED → LOADING  (файл кэша есть)  → READY
//
// BUILDING: реестр опрашивается последовательно (ListPipelines, затем
// GetParameters для каждого pipeline), результат сохраняется через
// cache.Store. Пустой реестр тоже даёт файл кэша.
//
// LOADING: файл читается через cache.Store. Ошибка формата фатальна
// и возвращается из New.
//
// READY — конечное состояние. Обратного перехода в пределах одного
// процесса нет; кэш после загрузки не изменяется.
//
// # Выбор pipeline
//
// FindBy ищет первое совпадение по полю без учёта регистра.
// SelectInteractively выводит нумерованный список и читает один ответ
// оператора; повторный запрос — забота вызывающего кода.
package manager
