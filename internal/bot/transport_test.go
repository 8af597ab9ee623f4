package bot

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTimeoutOutlastsPoll(t *testing.T) {
	poll := time.Duration(pollTimeout) * time.Second

	tests := []struct {
		name        string
		sendTimeout time.Duration
		want        time.Duration
	}{
		{name: "default send timeout", sendTimeout: 30 * time.Second, want: poll + pollMargin},
		{name: "no send timeout", sendTimeout: 0, want: poll + pollMargin},
		{name: "send timeout above poll", sendTimeout: 5 * time.Minute, want: 5 * time.Minute},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := clientTimeout(tc.sendTimeout)
			assert.Equal(t, tc.want, got)
			assert.Greater(t, got, poll)
		})
	}
}

func TestIdlePollIsNotCutOff(t *testing.T) {
	saved := pollTimeout
	pollTimeout = 1
	defer func() { pollTimeout = saved }()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"schedule_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			// no updates: hold the poll open for its whole timeout
			time.Sleep(time.Duration(pollTimeout) * time.Second)
			w.Write([]byte(`{"ok":true,"result":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	api, err := newBotAPI("token", server.URL+"/bot%s/%s", 100*time.Millisecond)
	require.NoError(t, err)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates, err := api.GetUpdates(u)
	require.NoError(t, err)
	assert.Empty(t, updates)
}
