package ports

import "github.com/larriantoniy/tg_intake_bot/internal/domain"

// BotClient определяет интерфейс для работы с Telegram
// Реализуется конкретными адаптерами (TDLib, Bot API и т.д.).
type BotClient interface {
	// Listen возвращает канал доменных обновлений
	Listen() (<-chan domain.Update, error)
	// SendText отправляет текст и убирает кастомную клавиатуру
	SendText(chatID int64, text string) error
	// RequestContact отправляет текст с кнопкой "поделиться номером"
	RequestContact(chatID int64, text string) error
	Close()
}
