package domain

// UpdateKind классифицирует входящее сообщение из Telegram
type UpdateKind int

const (
	KindText UpdateKind = iota
	KindCommand
	KindContact
)

// Update описывает входящее сообщение из приватного чата с ботом
type Update struct {
	ChatID      int64
	Kind        UpdateKind
	Command     string // без ведущего "/", lower-case; только для KindCommand
	Text        string
	PhoneNumber string // только для KindContact
}
