package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTelegram struct {
	mu   sync.Mutex
	sent []map[string]string
	fail bool
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"alerts","username":"alerts_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		_ = r.ParseForm()
		f.mu.Lock()
		f.sent = append(f.sent, map[string]string{
			"chat_id":                  r.FormValue("chat_id"),
			"text":                     r.FormValue("text"),
			"parse_mode":               r.FormValue("parse_mode"),
			"disable_web_page_preview": r.FormValue("disable_web_page_preview"),
		})
		fail := f.fail
		f.mu.Unlock()
		if fail {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":1710115500,"chat":{"id":-100,"type":"group"},"text":"ok"}}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestTelegram(t *testing.T, fake *fakeTelegram) *Telegram {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	tg, err := NewTelegramWithEndpoint("123:abc", srv.URL+"/bot%s/%s", -100, srv.Client())
	require.NoError(t, err)
	return tg
}

func TestTelegram_Send(t *testing.T) {
	fake := &fakeTelegram{}
	tg := newTestTelegram(t, fake)

	msg := "📣 <b>EMA50+EMAexit</b> | TF 1D | 2024-03-11 00:05 UTC\nBTCUSDT: <b>BUY</b> @ 110.0000 (2024-03-10 23:59 UTC)"
	require.NoError(t, tg.Send(context.Background(), msg))

	require.Len(t, fake.sent, 1)
	assert.Equal(t, "-100", fake.sent[0]["chat_id"])
	assert.Equal(t, msg, fake.sent[0]["text"])
	assert.Equal(t, "HTML", fake.sent[0]["parse_mode"])
	assert.Equal(t, "true", fake.sent[0]["disable_web_page_preview"])
}

func TestTelegram_SendError(t *testing.T) {
	fake := &fakeTelegram{fail: true}
	tg := newTestTelegram(t, fake)

	err := tg.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegram_LongMessageIsSplit(t *testing.T) {
	fake := &fakeTelegram{}
	tg := newTestTelegram(t, fake)

	line := strings.Repeat("x", 100)
	lines := make([]string, 60)
	for i := range lines {
		lines[i] = line
	}
	require.NoError(t, tg.Send(context.Background(), strings.Join(lines, "\n")))
	assert.Len(t, fake.sent, 2)
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitMessage("short", 10))

	parts := splitMessage("aaaa\nbbbb\ncccc", 9)
	assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, parts)

	// строка длиннее лимита режется по рунам
	parts = splitMessage("ёёёёё\nab", 3)
	assert.Equal(t, []string{"ёёё", "ёё", "ab"}, parts)

	msg := strings.Repeat("📣 line\n", 2000)
	for _, p := range splitMessage(msg, maxMessageRunes) {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), maxMessageRunes)
	}
}

func TestStdout_Send(t *testing.T) {
	assert.NoError(t, NewStdout().Send(context.Background(), "hello"))
}
