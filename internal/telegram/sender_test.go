package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sl4wa/outages-bot/internal/notifier"
)

func setupSender(t *testing.T) (*Sender, *atomic.Int64) {
	t.Helper()

	var sends atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/sendMessage") {
			sends.Add(1)
			resp := tgbotapi.APIResponse{Ok: true, Result: json.RawMessage(`{"message_id":1,"chat":{"id":1},"text":""}`)}
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		resp := tgbotapi.APIResponse{Ok: true, Result: json.RawMessage(`{"id":123,"is_bot":true,"first_name":"Test"}`)}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint("test-token", srv.URL+"/bot%s/%s")
	require.NoError(t, err)

	return NewSender(bot, zap.NewNop()), &sends
}

func TestSenderDelivers(t *testing.T) {
	s, sends := setupSender(t)

	err := s.Send(context.Background(), notifier.Notification{ChatID: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sends.Load())
}

func TestSenderCanceledContextAbortsBeforeSend(t *testing.T) {
	s, sends := setupSender(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, notifier.Notification{ChatID: 100})
	assert.Error(t, err)
	assert.Zero(t, sends.Load(), "nothing hits the API once the run is canceled")
}
