package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startServer(t *testing.T, h *Hub, userID int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.ServeWS(userID, w, r); err != nil {
			t.Logf("upgrade: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestPublishReachesUserConnections(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()
	srv := startServer(t, h, 7)

	a := dial(t, srv)
	defer a.Close()
	b := dial(t, srv)
	defer b.Close()

	require.Eventually(t, func() bool { return h.Clients(7) == 2 }, time.Second, 10*time.Millisecond)

	h.Publish(7, EventGoalCompleted, map[string]int64{"goalId": 3})

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var ev struct {
			Type    string           `json:"type"`
			Payload map[string]int64 `json:"payload"`
			SentAt  time.Time        `json:"sent_at"`
		}
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, EventGoalCompleted, ev.Type)
		assert.Equal(t, int64(3), ev.Payload["goalId"])
		assert.False(t, ev.SentAt.IsZero())
	}
}

func TestPublishOtherUserIsIgnored(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()
	srv := startServer(t, h, 1)

	conn := dial(t, srv)
	defer conn.Close()
	require.Eventually(t, func() bool { return h.Clients(1) == 1 }, time.Second, 10*time.Millisecond)

	h.Publish(2, EventAchievementUnlocked, "first_goal")

	conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestClientDisconnectUnregisters(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()
	srv := startServer(t, h, 5)

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return h.Clients(5) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return h.Clients(5) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestCloseSendsCloseFrame(t *testing.T) {
	h := NewHub(nil)
	srv := startServer(t, h, 9)

	conn := dial(t, srv)
	defer conn.Close()
	require.Eventually(t, func() bool { return h.Clients(9) == 1 }, time.Second, 10*time.Millisecond)

	h.Close()
	assert.Equal(t, 0, h.Clients(9))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "beklenen kapanış çerçevesi, gelen: %v", err)
}

func TestOriginCheck(t *testing.T) {
	h := NewHub([]string{"http://app.example"})
	defer h.Close()

	ok := httptest.NewRequest(http.MethodGet, "/", nil)
	ok.Header.Set("Origin", "http://app.example")
	assert.True(t, h.upgrader.CheckOrigin(ok))

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.Header.Set("Origin", "http://evil.example")
	assert.False(t, h.upgrader.CheckOrigin(bad))
}
