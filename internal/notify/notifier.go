package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"alert_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// лимит Telegram на длину текста сообщения
const maxMessageRunes = 4096

type Notifier interface {
	Send(ctx context.Context, msg string) error
}

// Telegram — пассивный нотифайер в один чат/группу.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{bot: b, chatID: chatID}, nil
}

// NewTelegramWithEndpoint — то же, но с кастомным API (тесты, прокси).
func NewTelegramWithEndpoint(token, endpoint string, chatID int64, client *http.Client) (*Telegram, error) {
	if client == nil {
		client = &http.Client{}
	}
	b, err := tgbot.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{bot: b, chatID: chatID}, nil
}

// Send отправляет текст в HTML режиме; длинный текст режется по строкам.
func (t *Telegram) Send(ctx context.Context, msg string) error {
	for i, part := range splitMessage(msg, maxMessageRunes) {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := tgbot.NewMessage(t.chatID, part)
		m.ParseMode = tgbot.ModeHTML
		m.DisableWebPagePreview = true
		if _, err := t.bot.Send(m); err != nil {
			return fmt.Errorf("telegram send part %d: %w", i+1, err)
		}
	}
	return nil
}

// splitMessage режет по границам строк так, чтобы каждый кусок <= limit рун.
// Строка длиннее лимита режется по рунам.
func splitMessage(msg string, limit int) []string {
	if utf8.RuneCountInString(msg) <= limit {
		return []string{msg}
	}

	var (
		parts []string
		cur   strings.Builder
		size  int
	)
	flush := func() {
		if size > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
			size = 0
		}
	}

	for _, line := range strings.Split(msg, "\n") {
		n := utf8.RuneCountInString(line)
		for n > limit {
			flush()
			r := []rune(line)
			parts = append(parts, string(r[:limit]))
			line = string(r[limit:])
			n -= limit
		}
		extra := n
		if size > 0 {
			extra++ // '\n'
		}
		if size+extra > limit {
			flush()
			extra = n
		}
		if size > 0 {
			cur.WriteByte('\n')
		}
		cur.WriteString(line)
		size += extra
	}
	flush()
	return parts
}

// Stdout — заглушка для dry run, всё логирует.
type Stdout struct{}

func NewStdout() *Stdout { return &Stdout{} }

func (s *Stdout) Send(_ context.Context, msg string) error {
	logger.Info("notification (dry run):\n%s", msg)
	return nil
}
