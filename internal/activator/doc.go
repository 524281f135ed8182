// Package activator отправляет запрос на активацию pipeline.
//
// Переопределения параметров передаются, только если они есть и
// не запрошен их пропуск. Пустой список переопределений не равен
// отсутствию списка: удалённый сервис трактует их по-разному, поэтому
// в первом случае поле ParameterValues не заполняется вовсе.
//
// Активация — одна попытка без retry. Ошибка удалённого вызова
// логируется и возвращается как Activation со статусом FAILED.
//
// После попытки Activator (если настроены) сохраняет её в историю
// (Recorder) и публикует событие (Notifier). Их ошибки только логируются.
package activator
