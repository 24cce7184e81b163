package line

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/louisuxu-sys/BC-LINE/bot"
	"github.com/louisuxu-sys/BC-LINE/bot/common"
	"github.com/louisuxu-sys/BC-LINE/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "channel-secret"

type handlerFunc func(ctx context.Context, msg bot.Message) []common.Reply

func (f handlerFunc) HandleMessage(ctx context.Context, msg bot.Message) []common.Reply {
	return f(ctx, msg)
}

type fakeReplier struct {
	mu      sync.Mutex
	tokens  []string
	batches [][]Message
	err     error
}

func (f *fakeReplier) Reply(_ context.Context, token string, messages []Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.batches = append(f.batches, messages)
	return f.err
}

func newTestServer(t *testing.T, handler MessageHandler, replier Replier) *Server {
	t.Helper()
	catalog, err := config.DefaultCatalog()
	require.NoError(t, err)
	return NewServer(testSecret, handler, NewRenderer(catalog), replier)
}

func textEvent(userID, token, text string) []byte {
	body, _ := json.Marshal(WebhookRequest{Events: []WebhookEvent{{
		Type:       "message",
		ReplyToken: token,
		Source:     EventSource{Type: "user", UserID: userID},
		Message:    &IncomingMessage{ID: "1", Type: "text", Text: text},
	}}})
	return body
}

func post(srv *Server, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("X-Line-Signature", signature)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, handlerFunc(func(context.Context, bot.Message) []common.Reply { return nil }), &fakeReplier{})

	for _, path := range []string{"/", "/health"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	}
}

func TestWebhook(t *testing.T) {
	t.Run("dispatches text messages and replies", func(t *testing.T) {
		var got []bot.Message
		handler := handlerFunc(func(_ context.Context, msg bot.Message) []common.Reply {
			got = append(got, msg)
			return []common.Reply{common.Text("hello")}
		})
		replier := &fakeReplier{}
		srv := newTestServer(t, handler, replier)

		body := textEvent("U1", "token-1", "uid")
		rec := post(srv, body, Sign(testSecret, body))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
		require.Len(t, got, 1)
		assert.Equal(t, bot.Message{UserID: "U1", Text: "uid", Platform: Platform}, got[0])
		require.Equal(t, []string{"token-1"}, replier.tokens)
		require.Len(t, replier.batches[0], 1)
		assert.NotNil(t, replier.batches[0][0].QuickReply, "main menu is attached")
	})

	t.Run("rejects bad signature", func(t *testing.T) {
		handler := handlerFunc(func(context.Context, bot.Message) []common.Reply {
			t.Fatal("handler must not run")
			return nil
		})
		srv := newTestServer(t, handler, &fakeReplier{})

		body := textEvent("U1", "token-1", "uid")
		rec := post(srv, body, Sign("wrong", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ignores non text events", func(t *testing.T) {
		replier := &fakeReplier{}
		srv := newTestServer(t, handlerFunc(func(context.Context, bot.Message) []common.Reply {
			t.Fatal("handler must not run")
			return nil
		}), replier)

		body, _ := json.Marshal(WebhookRequest{Events: []WebhookEvent{
			{Type: "follow", ReplyToken: "t", Source: EventSource{UserID: "U1"}},
			{Type: "message", ReplyToken: "t", Source: EventSource{UserID: "U1"}, Message: &IncomingMessage{Type: "sticker"}},
		}})
		rec := post(srv, body, Sign(testSecret, body))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, replier.tokens)
	})

	t.Run("reply failure still acknowledges", func(t *testing.T) {
		replier := &fakeReplier{err: errors.New("boom")}
		srv := newTestServer(t, handlerFunc(func(context.Context, bot.Message) []common.Reply {
			return []common.Reply{common.Text("hi")}
		}), replier)

		body := textEvent("U1", "token-1", "menu")
		rec := post(srv, body, Sign(testSecret, body))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, replier.tokens, 1)
	})

	t.Run("malformed payload", func(t *testing.T) {
		srv := newTestServer(t, handlerFunc(func(context.Context, bot.Message) []common.Reply { return nil }), &fakeReplier{})
		body := []byte("{")
		rec := post(srv, body, Sign(testSecret, body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReplyClient(t *testing.T) {
	var gotAuth string
	var gotBody replyRequest
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer api.Close()

	client := NewReplyClientWithURL(api.URL, "access-token")
	msgs := make([]Message, 7)
	for i := range msgs {
		msgs[i] = TextMessage("m")
	}
	require.NoError(t, client.Reply(context.Background(), "token-1", msgs))
	assert.Equal(t, "Bearer access-token", gotAuth)
	assert.Equal(t, "token-1", gotBody.ReplyToken)
	assert.Len(t, gotBody.Messages, MaxReplyMessages)

	require.NoError(t, client.Reply(context.Background(), "token-2", nil))
	assert.Equal(t, "token-1", gotBody.ReplyToken, "empty replies are not sent")
}

func TestReplyClientError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Invalid reply token"}`, http.StatusBadRequest)
	}))
	defer api.Close()

	err := NewReplyClientWithURL(api.URL, "t").Reply(context.Background(), "x", []Message{TextMessage("m")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Invalid reply token")
}
