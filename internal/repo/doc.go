// Package repo — история активаций pipeline в Postgres.
//
// История опциональна: dpctl работает и без БД. Если задан DB_URL,
// каждая попытка активации сохраняется в таблицу pipeline_activations
// и доступна через `dpctl history`.
package repo
