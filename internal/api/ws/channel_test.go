package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowframe/embed/internal/embed"
)

const flowOrigin = "https://flow.test"

type wsFixture struct {
	srv     *httptest.Server
	manager *embed.Manager
	inst    *embed.Instance
}

func newFixture(t *testing.T) *wsFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := embed.NewManager("https://app.test", nil, nil)
	inst := manager.Create(embed.Options{Origin: flowOrigin, AutoHeight: true})

	handler := NewHandler(manager, nil, nil)
	router := gin.New()
	router.GET("/embeds/:id/channel", handler.HandleChannel)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &wsFixture{srv: srv, manager: manager, inst: inst}
}

func (f *wsFixture) dial(t *testing.T, origin string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/embeds/" + f.inst.Controller.ID().String() + "/channel"
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{origin}})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Welcome frame.
	var welcome map[string]interface{}
	require.NoError(t, conn.ReadJSON(&welcome))
	require.Equal(t, "connected", welcome["type"])
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestChannelForwardsAnalyticsEvents(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, flowOrigin)

	envelope := `{"kind":"analytics","eventType":"step-completed","answers":{"q1":"yes"}}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(envelope)))

	msg := readEvent(t, conn)
	assert.Equal(t, "step-completed", msg["type"])
	answers, ok := msg["answers"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "yes", answers["q1"])
}

func TestChannelForwardsRedirects(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, flowOrigin)

	envelope := `{"kind":"redirect","payload":"https://done.test/thanks"}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(envelope)))

	msg := readEvent(t, conn)
	assert.Equal(t, "redirect", msg["type"])
	assert.Equal(t, "https://done.test/thanks", msg["url"])
}

func TestChannelUntrustedOriginProducesNothing(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, "https://evil.test")

	envelope := `{"kind":"analytics","eventType":"flow-loaded"}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(envelope)))

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var msg json.RawMessage
	err := conn.ReadJSON(&msg)
	assert.Error(t, err)
}

func TestChannelFlowClosedTearsDownInstance(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, flowOrigin)

	envelope := `{"kind":"analytics","eventType":"flow-closed"}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(envelope)))

	msg := readEvent(t, conn)
	assert.Equal(t, "flow-closed", msg["type"])

	// Server side ends the relay once the instance is gone.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	_, ok := f.manager.Get(f.inst.Controller.ID())
	assert.False(t, ok)
}

func TestChannelSecondConnectionRejected(t *testing.T) {
	f := newFixture(t)
	f.dial(t, flowOrigin)

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/embeds/" + f.inst.Controller.ID().String() + "/channel"
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{flowOrigin}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestChannelUnknownEmbed(t *testing.T) {
	f := newFixture(t)

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/embeds/emb_nope/channel"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
