package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHub sets up a Hub behind a test HTTP server and returns a dial helper.
func testHub(t *testing.T) (*Hub, func(sessionID uuid.UUID) *ws.Conn) {
	t.Helper()

	hub := NewHub()
	t.Cleanup(func() { hub.Stop() })

	upgrader := ws.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		sessionID := uuid.MustParse(r.URL.Query().Get("session"))
		_ = hub.Register(sessionID, conn)

		go func() {
			defer hub.Unregister(sessionID, conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					break
				}
			}
		}()
	}))
	t.Cleanup(func() { server.Close() })

	dial := func(sessionID uuid.UUID) *ws.Conn {
		t.Helper()
		url := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=" + sessionID.String()
		conn, _, err := ws.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}

	return hub, dial
}

func waitForClients(t *testing.T, hub *Hub, sessionID uuid.UUID, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount(sessionID) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("client count for %s never reached %d", sessionID, want)
}

func readUpdate(t *testing.T, conn *ws.Conn) Update {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var update Update
	require.NoError(t, json.Unmarshal(data, &update))
	return update
}

func TestBroadcastReachesSubscriber(t *testing.T) {
	hub, dial := testHub(t)
	sessionID := uuid.New()

	conn := dial(sessionID)
	waitForClients(t, hub, sessionID, 1)

	hub.Broadcast(sessionID, Update{
		Role:      domain.RoleUser,
		Label:     domain.LabelPositive,
		Compound:  0.44,
		Timestamp: time.Now(),
	})

	update := readUpdate(t, conn)
	assert.Equal(t, domain.LabelPositive, update.Label)
	assert.InDelta(t, 0.44, update.Compound, 1e-9)
}

func TestBroadcastIsScopedToSession(t *testing.T) {
	hub, dial := testHub(t)
	sessionA := uuid.New()
	sessionB := uuid.New()

	connA := dial(sessionA)
	connB := dial(sessionB)
	waitForClients(t, hub, sessionA, 1)
	waitForClients(t, hub, sessionB, 1)

	hub.Broadcast(sessionA, Update{Label: domain.LabelNegative, Compound: -0.5})

	update := readUpdate(t, connA)
	assert.Equal(t, domain.LabelNegative, update.Label)

	require.NoError(t, connB.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := connB.ReadMessage()
	assert.Error(t, err, "subscriber of another session should receive nothing")
}

func TestMultipleSubscribersReceiveSameUpdate(t *testing.T) {
	hub, dial := testHub(t)
	sessionID := uuid.New()

	conn1 := dial(sessionID)
	conn2 := dial(sessionID)
	waitForClients(t, hub, sessionID, 2)

	hub.Broadcast(sessionID, Update{Label: domain.LabelNeutral, Compound: 0})

	update1 := readUpdate(t, conn1)
	update2 := readUpdate(t, conn2)
	assert.Equal(t, update1.Label, update2.Label)
}

func TestUnregisterOnDisconnect(t *testing.T) {
	hub, dial := testHub(t)
	sessionID := uuid.New()

	conn := dial(sessionID)
	waitForClients(t, hub, sessionID, 1)

	conn.Close()
	waitForClients(t, hub, sessionID, 0)
}

func TestBroadcastToEmptySessionIsNoop(t *testing.T) {
	hub, _ := testHub(t)

	// Must not panic or block.
	hub.Broadcast(uuid.New(), Update{Label: domain.LabelPositive, Compound: 0.3})
	assert.Equal(t, 0, hub.ClientCount(uuid.New()))
}
