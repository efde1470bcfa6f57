package realtime

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/config"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/domain/model"
)

func newTestHub(origins []string) (*Hub, *httptest.Server) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := NewHub(origins, log)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = h.ServeWS(w, r)
	}))
	return h, srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHub_PublishReachesClient(t *testing.T) {
	h, srv := newTestHub(nil)
	defer srv.Close()
	defer h.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	h.Publish(model.OrderEvent{Type: model.OrderEventCreated, OrderID: 12})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev model.OrderEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, model.OrderEventCreated, ev.Type)
	assert.Equal(t, int64(12), ev.OrderID)
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	h, srv := newTestHub(nil)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return h.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RejectsUnknownOrigin(t *testing.T) {
	h, srv := newTestHub([]string{"https://shop.example"})
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", "https://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, h.ClientCount())
}

// CORS_ORIGINS未指定でも既定のフロント以外は弾く
func TestHub_DefaultOriginsFromConfig(t *testing.T) {
	h, srv := newTestHub(config.Config{}.AllowedOrigins())
	defer srv.Close()
	defer h.Close()

	header := http.Header{}
	header.Set("Origin", "https://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "http://localhost:5173")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.NoError(t, err)
	defer conn.Close()
	assert.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestHub_PublishWithoutClients(t *testing.T) {
	h, srv := newTestHub(nil)
	defer srv.Close()

	assert.NotPanics(t, func() {
		h.Publish(model.OrderEvent{Type: model.OrderEventDeleted, OrderID: 1})
	})
}
