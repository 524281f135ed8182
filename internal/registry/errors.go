package registry

import "errors"

// ErrRegistryQuery — удалённый запрос к реестру завершился ошибкой.
//
// Наружу не возвращается: Client логирует ошибку с этой обёрткой
// и отдаёт пустой результат.
var ErrRegistryQuery = errors.New("registry query failed")
