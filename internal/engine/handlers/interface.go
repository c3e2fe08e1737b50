package handlers

import (
	"cognitive-crawler/internal/domain"
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	World  *domain.World
	Actor  *domain.Entity      // Тот, кто выполняет команду (игрок)
	Intent domain.PlayerIntent // Исходное намерение
	Target *domain.Point       // Выбранная клетка (режим прицеливания)
}

// Event - побочный эффект команды, который обрабатывает движок.
type Event int

const (
	EventNone Event = iota
	EventDescend
)

// TargetRequest - предмет требует выбора цели перед применением.
type TargetRequest struct {
	ItemIndex int
	Range     int
	Radius    int
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ управляет фазами хода, он возвращает данные.
type Result struct {
	Consumed  bool           // Команда потратила ход
	Event     Event          // Событие для обработки движком
	Targeting *TargetRequest // Нужна цель: ход не тратится, включается прицеливание
}

// HandlerFunc - это контракт для любой команды (MOVE, USE_ITEM, etc).
// Ошибка означает отказ: ход не тратится, движок пишет причину в журнал.
type HandlerFunc func(ctx Context) (Result, error)

// Turn - успешное действие, потратившее ход.
func Turn() Result {
	return Result{Consumed: true}
}

// EmptyResult - вспомогательная функция для пустого ответа без траты хода
func EmptyResult() Result {
	return Result{}
}
