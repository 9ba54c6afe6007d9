package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weitseng/rolechat/internal/adapter/llm"
	"github.com/weitseng/rolechat/internal/adapter/search"
	"github.com/weitseng/rolechat/internal/archive"
	"github.com/weitseng/rolechat/internal/config"
	"github.com/weitseng/rolechat/internal/policy"
	"github.com/weitseng/rolechat/internal/roles"
	"github.com/weitseng/rolechat/internal/service"
	"github.com/weitseng/rolechat/internal/session"
)

type fakeReplier struct {
	tokens []string
	texts  []string
}

func (f *fakeReplier) ReplyText(ctx context.Context, replyToken, text string) error {
	f.tokens = append(f.tokens, replyToken)
	f.texts = append(f.texts, text)
	return nil
}

func newTestWebhook(t *testing.T, channelSecret string) (*Handler, *fakeReplier) {
	t.Helper()

	archiveStore, err := archive.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { archiveStore.Close() })

	policyEngine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)

	cfg := &config.Config{
		LLMModel:        "gpt-4o",
		LLMMaxTokens:    1000,
		LLMTemperature:  0.7,
		RetrieveLimit:   3,
		DefaultRole:     "客服代表",
		HistoryMaxTurns: 20,
	}

	svc, err := service.New(
		roles.NewRegistry(),
		session.NewStore(cfg.HistoryMaxTurns),
		search.NewRetriever(nil),
		llm.NewMockClient(),
		archiveStore,
		policyEngine,
		cfg,
	)
	require.NoError(t, err)

	replier := &fakeReplier{}
	return NewHandler(svc, replier, channelSecret), replier
}

func postCallback(e *echo.Echo, h *Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h.Callback(c)
	return rec
}

const textEvent = `{"events":[{"type":"message","replyToken":"rt1","source":{"type":"user","userId":"U1"},"message":{"id":"m1","type":"text","text":"你好"}}]}`

func TestCallbackWelcomesNewUser(t *testing.T) {
	e := echo.New()
	h, replier := newTestWebhook(t, "")

	rec := postCallback(e, h, textEvent, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, replier.texts, 1)
	assert.Equal(t, "rt1", replier.tokens[0])
	assert.Contains(t, replier.texts[0], "目前角色：客服代表")
}

func TestCallbackRepliesAfterWelcome(t *testing.T) {
	e := echo.New()
	h, replier := newTestWebhook(t, "")

	postCallback(e, h, textEvent, nil)
	postCallback(e, h, textEvent, nil)

	require.Len(t, replier.texts, 2)
	assert.Contains(t, replier.texts[1], "你好") // mock echoes the input
}

func TestCallbackRoleCommand(t *testing.T) {
	e := echo.New()
	h, replier := newTestWebhook(t, "")

	body := `{"events":[{"type":"message","replyToken":"rt1","source":{"type":"user","userId":"U1"},"message":{"type":"text","text":"/角色 技術顧問"}}]}`
	rec := postCallback(e, h, body, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, replier.texts, 1)
	assert.Contains(t, replier.texts[0], "已切換為「技術顧問」角色")
}

func TestCallbackNonTextMessages(t *testing.T) {
	e := echo.New()
	h, replier := newTestWebhook(t, "")

	body := `{"events":[
		{"type":"message","replyToken":"rt1","source":{"type":"user","userId":"U1"},"message":{"type":"sticker"}},
		{"type":"message","replyToken":"rt2","source":{"type":"user","userId":"U1"},"message":{"type":"image"}},
		{"type":"message","replyToken":"rt3","source":{"type":"user","userId":"U1"},"message":{"type":"video"}}
	]}`
	rec := postCallback(e, h, body, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, replier.texts, 3)
	assert.Equal(t, service.ReplySticker, replier.texts[0])
	assert.Equal(t, service.ReplyImage, replier.texts[1])
	assert.Equal(t, service.ReplyVideo, replier.texts[2])
}

func TestCallbackIgnoresNonMessageEvents(t *testing.T) {
	e := echo.New()
	h, replier := newTestWebhook(t, "")

	body := `{"events":[{"type":"follow","replyToken":"rt1","source":{"type":"user","userId":"U1"}}]}`
	rec := postCallback(e, h, body, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, replier.texts)
}

func TestCallbackRejectsBadSignature(t *testing.T) {
	e := echo.New()
	h, replier := newTestWebhook(t, "secret")

	rec := postCallback(e, h, textEvent, map[string]string{"X-Line-Signature": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, replier.texts)
}

func TestCallbackAcceptsValidSignature(t *testing.T) {
	e := echo.New()
	h, replier := newTestWebhook(t, "secret")

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte(textEvent))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	rec := postCallback(e, h, textEvent, map[string]string{"X-Line-Signature": signature})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, replier.texts, 1)
}

func TestCallbackInvalidBody(t *testing.T) {
	e := echo.New()
	h, _ := newTestWebhook(t, "")

	rec := postCallback(e, h, "{broken", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
