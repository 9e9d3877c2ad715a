package connectionhub

import (
	"sync"

	wsmodels "hr-suite-backend/models/ws"
)

type Provider interface {
	AddClient(userID string, conn Conn)
	// DeleteClient удаляет сессию, только если она принадлежит conn: новое соединение того же
	// пользователя могло уже заменить старое
	DeleteClient(userID string, conn Conn)
	SendMessage(msg wsmodels.ServerMessage) bool
	IsConnected(userID string) bool
}

var Instance Provider

func Init() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return &impl{
		clients: map[string]*clientSession{},
	}
}

type impl struct {
	mu      sync.Mutex
	clients map[string]*clientSession //map[userID]
}

func (i *impl) AddClient(userID string, conn Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if oldSess, ok := i.clients[userID]; ok {
		oldSess.stop()
	}
	i.clients[userID] = newSession(conn)
}

func (i *impl) DeleteClient(userID string, conn Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn != conn {
		return
	}
	delete(i.clients, userID)
	sess.stop()
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) bool {
	i.mu.Lock()
	sess, ok := i.clients[msg.ToUserID]
	i.mu.Unlock()
	if !ok {
		return false
	}
	return sess.enqueue(msg)
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.clients[userID]
	return ok
}
