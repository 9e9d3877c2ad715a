package connectionhub

import (
	"sync"
	"testing"
	"time"

	wsmodels "hr-suite-backend/models/ws"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	sent   []interface{}
	closed bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v)
	return nil
}

func (c *fakeConn) WriteControl(messageType int, data []byte, deadline time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) sentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestHub(t *testing.T) {
	t.Run(`message delivered to connected user`, func(t *testing.T) {
		hub := NewInstance()
		conn := &fakeConn{}
		hub.AddClient("user-1", conn)
		require.True(t, hub.IsConnected("user-1"))

		require.True(t, hub.SendMessage(wsmodels.ServerMessage{ToUserID: "user-1", Code: wsmodels.ApprovalStatusCode}))
		require.False(t, hub.SendMessage(wsmodels.ServerMessage{ToUserID: "user-2", Code: wsmodels.ApprovalStatusCode}))
		require.Eventually(t, func() bool { return conn.sentCount() == 1 }, time.Second, time.Millisecond)
	})

	t.Run(`new connection replaces old one`, func(t *testing.T) {
		hub := NewInstance()
		oldConn := &fakeConn{}
		newConn := &fakeConn{}
		hub.AddClient("user-1", oldConn)
		hub.AddClient("user-1", newConn)
		require.Eventually(t, oldConn.isClosed, time.Second, time.Millisecond)

		// закрытие старого соединения не должно удалить новое
		hub.DeleteClient("user-1", oldConn)
		require.True(t, hub.IsConnected("user-1"))

		hub.DeleteClient("user-1", newConn)
		require.False(t, hub.IsConnected("user-1"))
		require.Eventually(t, newConn.isClosed, time.Second, time.Millisecond)
	})
}
