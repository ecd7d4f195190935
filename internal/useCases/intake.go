package useCases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/larriantoniy/tg_intake_bot/internal/domain"
	"github.com/larriantoniy/tg_intake_bot/internal/observability"
	"github.com/larriantoniy/tg_intake_bot/internal/ports"
)

const (
	cmdStart  = "start"
	cmdCancel = "cancel"
	cmdUsers  = "users"
)

// Тексты ответов бота
const (
	MsgAskName     = "Добро пожаловать! Пожалуйста, отправьте свое ФИО."
	MsgAskPhone    = "Теперь отправьте свой номер телефона."
	MsgUseButton   = "Пожалуйста, отправьте номер телефона через кнопку."
	MsgSaveFailed  = "Произошла ошибка при сохранении ваших данных. Попробуйте еще раз."
	MsgListFailed  = "Произошла ошибка при получении данных."
	MsgNoRecords   = "Пока нет сохраненных пользователей."
	MsgCancelled   = "Операция отменена."
	MsgListHeader  = "Список пользователей:"
	msgSavedFormat = "Спасибо, %s! Ваши данные сохранены."
)

// Intake ведёт анкету: /start -> ФИО -> контакт -> запись в хранилище.
// Сессии живут в памяти процесса, по одной на chat_id.
type Intake struct {
	log     *slog.Logger
	bot     ports.BotClient
	repo    ports.RecordRepo
	metrics *observability.Metrics

	mu       sync.Mutex
	sessions map[int64]*domain.Session
}

func NewIntake(
	log *slog.Logger,
	bot ports.BotClient,
	repo ports.RecordRepo,
	metrics *observability.Metrics,
) *Intake {
	return &Intake{
		log:      log,
		bot:      bot,
		repo:     repo,
		metrics:  metrics,
		sessions: make(map[int64]*domain.Session),
	}
}

// Run читает обновления из транспорта до закрытия канала или отмены контекста
func (i *Intake) Run(ctx context.Context) error {
	updates, err := i.bot.Listen()
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			i.HandleUpdate(ctx, upd)
		}
	}
}

func (i *Intake) HandleUpdate(ctx context.Context, upd domain.Update) {
	switch upd.Kind {
	case domain.KindCommand:
		i.handleCommand(ctx, upd)
	case domain.KindText:
		i.handleText(upd)
	case domain.KindContact:
		i.handleContact(ctx, upd)
	}
}

func (i *Intake) handleCommand(ctx context.Context, upd domain.Update) {
	switch upd.Command {
	case cmdStart:
		i.startConversation(upd.ChatID)
	case cmdCancel:
		i.cancelConversation(upd.ChatID)
	case cmdUsers:
		i.listRecords(ctx, upd.ChatID)
	default:
		// незнакомые команды не меняют состояние и остаются без ответа
		i.log.Debug("ignoring unknown command", "chat_id", upd.ChatID, "command", upd.Command)
	}
}

// startConversation создаёт сессию; повторный /start перезапускает анкету с начала
func (i *Intake) startConversation(chatID int64) {
	i.mu.Lock()
	i.sessions[chatID] = &domain.Session{
		ChatID:    chatID,
		State:     domain.AwaitingName,
		StartedAt: time.Now().UTC(),
	}
	i.updateActiveLocked()
	i.mu.Unlock()

	if i.metrics != nil {
		i.metrics.ConversationsStarted.Inc()
	}
	i.log.Info("conversation started", "chat_id", chatID)

	if err := i.bot.SendText(chatID, MsgAskName); err != nil {
		i.log.Error("send ask-name prompt", "chat_id", chatID, "error", err)
	}
}

func (i *Intake) cancelConversation(chatID int64) {
	i.mu.Lock()
	_, active := i.sessions[chatID]
	if active {
		delete(i.sessions, chatID)
		i.updateActiveLocked()
	}
	i.mu.Unlock()

	if !active {
		// отменять нечего
		i.log.Debug("cancel without active session", "chat_id", chatID)
		return
	}

	if i.metrics != nil {
		i.metrics.ConversationsCancelled.Inc()
	}
	i.log.Info("conversation cancelled", "chat_id", chatID)

	if err := i.bot.SendText(chatID, MsgCancelled); err != nil {
		i.log.Error("send cancel ack", "chat_id", chatID, "error", err)
	}
}

func (i *Intake) handleText(upd domain.Update) {
	i.mu.Lock()
	s, ok := i.sessions[upd.ChatID]
	var state domain.State
	if ok {
		state = s.State
		if state == domain.AwaitingName {
			s.FullName = upd.Text
			s.State = domain.AwaitingPhone
		}
	}
	i.mu.Unlock()

	if !ok {
		i.log.Debug("text without active session", "chat_id", upd.ChatID)
		return
	}

	switch state {
	case domain.AwaitingName:
		if err := i.bot.RequestContact(upd.ChatID, MsgAskPhone); err != nil {
			i.log.Error("send ask-phone prompt", "chat_id", upd.ChatID, "error", err)
		}
	case domain.AwaitingPhone:
		// состояние не меняется, просим воспользоваться кнопкой
		if err := i.bot.SendText(upd.ChatID, MsgUseButton); err != nil {
			i.log.Error("send use-button reminder", "chat_id", upd.ChatID, "error", err)
		}
	}
}

func (i *Intake) handleContact(ctx context.Context, upd domain.Update) {
	i.mu.Lock()
	s, ok := i.sessions[upd.ChatID]
	if !ok || s.State != domain.AwaitingPhone {
		i.mu.Unlock()
		i.log.Debug("contact out of order", "chat_id", upd.ChatID)
		return
	}
	fullName := s.FullName
	// сессия снимается до записи: при любом исходе разговор завершён
	delete(i.sessions, upd.ChatID)
	i.updateActiveLocked()
	i.mu.Unlock()

	rec := domain.Record{
		FullName:    fullName,
		PhoneNumber: upd.PhoneNumber,
	}

	if err := i.repo.Insert(ctx, rec); err != nil {
		i.log.Error("insert record failed", "chat_id", upd.ChatID, "error", err)
		if i.metrics != nil {
			i.metrics.StoreErrors.Inc()
		}
		if err := i.bot.SendText(upd.ChatID, MsgSaveFailed); err != nil {
			i.log.Error("send save-failed notice", "chat_id", upd.ChatID, "error", err)
		}
		return
	}

	if i.metrics != nil {
		i.metrics.ConversationsCompleted.Inc()
	}
	i.log.Info("record saved", "chat_id", upd.ChatID)

	if err := i.bot.SendText(upd.ChatID, fmt.Sprintf(msgSavedFormat, fullName)); err != nil {
		i.log.Error("send thank-you", "chat_id", upd.ChatID, "error", err)
	}
}

// listRecords отвечает нумерованным списком всех сохранённых анкет
func (i *Intake) listRecords(ctx context.Context, chatID int64) {
	records, err := i.repo.ListAll(ctx)
	if err != nil {
		i.log.Error("list records failed", "chat_id", chatID, "error", err)
		if i.metrics != nil {
			i.metrics.StoreErrors.Inc()
		}
		if err := i.bot.SendText(chatID, MsgListFailed); err != nil {
			i.log.Error("send list-failed notice", "chat_id", chatID, "error", err)
		}
		return
	}

	if err := i.bot.SendText(chatID, FormatRecords(records)); err != nil {
		i.log.Error("send records list", "chat_id", chatID, "error", err)
	}
}

// FormatRecords строит текст ответа на /users
func FormatRecords(records []domain.Record) string {
	if len(records) == 0 {
		return MsgNoRecords
	}

	var b strings.Builder
	b.WriteString(MsgListHeader)
	for n, rec := range records {
		fmt.Fprintf(&b, "\n%d. %s - %s", n+1, rec.FullName, rec.PhoneNumber)
	}
	return b.String()
}

// ActiveSessions возвращает число незавершённых анкет
func (i *Intake) ActiveSessions() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.sessions)
}

// SessionState сообщает состояние анкеты chat_id, если она активна
func (i *Intake) SessionState(chatID int64) (domain.State, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	s, ok := i.sessions[chatID]
	if !ok {
		return 0, false
	}
	return s.State, true
}

func (i *Intake) updateActiveLocked() {
	if i.metrics != nil {
		i.metrics.ActiveSessions.Set(float64(len(i.sessions)))
	}
}
