package domain

import "time"

type State int

const (
	AwaitingName State = iota
	AwaitingPhone
)

func (s State) String() string {
	switch s {
	case AwaitingName:
		return "awaiting_name"
	case AwaitingPhone:
		return "awaiting_phone"
	default:
		return "unknown"
	}
}

// Session — рабочая память одной анкеты: накапливает поля будущего Record.
// Живёт только в памяти процесса, отсутствие сессии = разговор не начат.
type Session struct {
	ChatID    int64
	State     State
	FullName  string
	StartedAt time.Time
}
