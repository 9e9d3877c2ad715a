package wsclient

import (
	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Reader часть websocket соединения, из которой читает клиент
type Reader interface {
	ReadMessage() (messageType int, p []byte, err error)
}

func NewClient(userID string, c Reader) *WsClient {
	return &WsClient{
		conn:   c,
		userID: userID,
	}
}

type WsClient struct {
	conn   Reader
	userID string
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch читает входящие сообщения до закрытия соединения.
// Сервер только отправляет статусы, входящие сообщения клиента игнорируются.
func (c *WsClient) Dispatch() {
	logger := log.WithField("user_id", c.userID)
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ошибка получения сообщения")
			}
			return
		}
		logger.WithField("ws_message_len", len(data)).Debug("ws-msg")
	}
}
