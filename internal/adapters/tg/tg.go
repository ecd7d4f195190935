package tg

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/larriantoniy/tg_intake_bot/internal/config"
	"github.com/larriantoniy/tg_intake_bot/internal/domain"
	"github.com/zelenin/go-tdlib/client"
)

const requestContactButton = "Отправить номер телефона"

// Client реализует ports.BotClient через TDLib в bot-режиме
type Client struct {
	client *client.Client
	logger *slog.Logger
	selfId int64
}

func NewClient(cfg *config.AppConfig, log *slog.Logger) (*Client, error) {
	dbDir := filepath.Join(cfg.SessionDir, "database")
	filesDir := filepath.Join(cfg.SessionDir, "files")

	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir files dir: %w", err)
	}

	if _, err := client.SetLogVerbosityLevel(&client.SetLogVerbosityLevelRequest{
		NewVerbosityLevel: 1,
	}); err != nil {
		log.Error("TDLib SetLogVerbosityLevel", "error", err)
	}

	tdParams := &client.SetTdlibParametersRequest{
		UseTestDc:          false,
		DatabaseDirectory:  dbDir,
		FilesDirectory:     filesDir,
		UseFileDatabase:    false,
		UseMessageDatabase: false,
		UseSecretChats:     false,
		ApiId:              cfg.Telegram.ApiID,
		ApiHash:            cfg.Telegram.ApiHash,
		SystemLanguageCode: "ru",
		DeviceModel:        "Server",
		SystemVersion:      "1.0",
		ApplicationVersion: "1.0",
	}

	checkIPv4(log)
	checkIPv6(log)

	authorizer := client.BotAuthorizer(tdParams, cfg.Telegram.Token)

	tdCli, err := client.NewClient(authorizer)
	if err != nil {
		log.Error("TDLib NewClient error", "error", err)
		return nil, err
	}

	me, err := tdCli.GetMe()
	if err != nil {
		log.Error("GetMe failed", "error", err)
		return nil, err
	}

	log.Info("TDLib bot client initialized and authorized", "self_id", me.Id)

	return &Client{
		client: tdCli,
		logger: log,
		selfId: me.Id,
	}, nil
}

func (t *Client) Close() {
	t.client.Close()
}

// Listen возвращает канал доменных обновлений и запускает обработку апдейтов TDLib
func (t *Client) Listen() (<-chan domain.Update, error) {
	out := make(chan domain.Update)

	listener := t.client.GetListener()
	go func() {
		defer close(out)
		for update := range listener.Updates {
			if upd, ok := update.(*client.UpdateNewMessage); ok {
				t.processUpdateNewMessage(out, upd)
			}
		}
	}()

	return out, nil
}

func (t *Client) processUpdateNewMessage(out chan domain.Update, upd *client.UpdateNewMessage) {
	if upd.Message.IsOutgoing {
		return
	}
	// боту интересны только приватные чаты; их chat_id совпадает с user_id
	if upd.Message.ChatId <= 0 {
		return
	}

	switch content := upd.Message.Content.(type) {
	case *client.MessageText:
		out <- parseTextUpdate(upd.Message.ChatId, content.Text.Text)
	case *client.MessageContact:
		out <- domain.Update{
			ChatID:      upd.Message.ChatId,
			Kind:        domain.KindContact,
			PhoneNumber: content.Contact.PhoneNumber,
		}
	default:
		t.logger.Debug("skip unsupported message content",
			"chat_id", upd.Message.ChatId,
			"content_type", upd.Message.Content.MessageContentType(),
		)
	}
}

// parseTextUpdate различает команду ("/start", "/users@botname arg") и обычный текст
func parseTextUpdate(chatID int64, text string) domain.Update {
	if cmd, ok := parseCommand(text); ok {
		return domain.Update{ChatID: chatID, Kind: domain.KindCommand, Command: cmd, Text: text}
	}
	return domain.Update{ChatID: chatID, Kind: domain.KindText, Text: text}
}

func parseCommand(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	fields := strings.Fields(text)
	cmd := strings.TrimPrefix(fields[0], "/")
	// в группах команды приходят как /cmd@botname
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	if cmd == "" {
		return "", false
	}
	return strings.ToLower(cmd), true
}

// SendText отправляет текстовый ответ и убирает кастомную клавиатуру
func (t *Client) SendText(chatID int64, text string) error {
	return t.send(chatID, text, &client.ReplyMarkupRemoveKeyboard{})
}

// RequestContact отправляет текст с one-time клавиатурой "поделиться номером"
func (t *Client) RequestContact(chatID int64, text string) error {
	markup := &client.ReplyMarkupShowKeyboard{
		Rows: [][]*client.KeyboardButton{
			{
				{
					Text: requestContactButton,
					Type: &client.KeyboardButtonTypeRequestPhoneNumber{},
				},
			},
		},
		ResizeKeyboard: true,
		OneTime:        true,
		IsPersonal:     true,
	}
	return t.send(chatID, text, markup)
}

func (t *Client) send(chatID int64, text string, markup client.ReplyMarkup) error {
	input := &client.InputMessageText{
		Text: &client.FormattedText{
			Text: text,
		},
		ClearDraft: true,
	}

	_, err := t.client.SendMessage(&client.SendMessageRequest{
		ChatId:              chatID,
		InputMessageContent: input,
		ReplyMarkup:         markup,
	})
	if err != nil {
		t.logger.Error("SendMessage failed", "chat_id", chatID, "error", err)
		return err
	}

	return nil
}
