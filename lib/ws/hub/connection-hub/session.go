package connectionhub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn часть websocket соединения, нужная сессии
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

type clientSession struct {
	conn Conn

	// Outbound mesages, buffered.
	sendCh chan any
	ctx    context.Context
	stop   func()
}

func newSession(conn Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		stop:   cancelFn,
		ctx:    ctx,
		conn:   conn,
		sendCh: make(chan any, 8),
	}
	go sess.startSend()
	return sess
}

func (s *clientSession) startSend() {
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.send(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
			}
		}
	}
}

// enqueue не блокирует отправителя после остановки сессии
func (s *clientSession) enqueue(msg any) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.sendCh <- msg:
		return true
	}
}

func (s *clientSession) send(msg interface{}) error {
	if s.conn == nil {
		return nil
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		return err
	}
	log.Debugf("отправлено сообщение: %+v", msg)
	return nil
}

func (s *clientSession) close() {
	if s.conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		log.WithError(err).Debug("не удалось отправить сообщение о закрытии")
	}
}
