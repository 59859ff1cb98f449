package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
)

func startHub(t *testing.T) (*PreviewHub, *httptest.Server) {
	t.Helper()
	hub := NewPreviewHub(4, logging.NewDiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, r.URL.Query().Get("block"))
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, blockID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?block=" + blockID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPreviewHub_DeliversToBlockSubscribers(t *testing.T) {
	hub, srv := startHub(t)

	watcher := dial(t, srv, "b1")
	other := dial(t, srv, "b2")
	require.Eventually(t, func() bool {
		return hub.SubscriberCount("b1") == 1 && hub.SubscriberCount("b2") == 1
	}, 2*time.Second, 10*time.Millisecond)

	p := hero.ComputePresentation(hero.Attributes{ContentWidth: 50})
	hub.Publish(PreviewMessage{Type: MessageUpdate, BlockID: "b1", Presentation: &p, HTML: "<div></div>"})

	watcher.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := watcher.ReadMessage()
	require.NoError(t, err)

	var msg PreviewMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MessageUpdate, msg.Type)
	assert.Equal(t, "b1", msg.BlockID)
	assert.Equal(t, "<div></div>", msg.HTML)
	require.NotNil(t, msg.Presentation)
	assert.Equal(t, p.LayoutClass, msg.Presentation.LayoutClass)

	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestPreviewHub_UnregistersOnClose(t *testing.T) {
	hub, srv := startHub(t)

	conn := dial(t, srv, "b1")
	require.Eventually(t, func() bool { return hub.SubscriberCount("b1") == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	assert.Eventually(t, func() bool { return hub.SubscriberCount("b1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestPreviewHub_PublishWithoutSubscribersIsNoop(t *testing.T) {
	hub := NewPreviewHub(1, logging.NewDiscardLogger())
	// no Run loop: a queued message would fill the buffer
	hub.Publish(PreviewMessage{BlockID: "nobody"})
	hub.Publish(PreviewMessage{BlockID: "nobody"})
	assert.Equal(t, 0, len(hub.broadcast))
}
