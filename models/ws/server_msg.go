package wsmodels

const (
	// ApprovalStatusCode изменение статуса подтверждения роли, Data - accessapimodels.ApprovalStatus
	ApprovalStatusCode = "approval_status"
)

type ServerMessage struct {
	ToUserID string      `json:"-"`
	Time     string      `json:"time"`           // время события
	Code     string      `json:"code"`           // код события
	Msg      string      `json:"msg,omitempty"`  // текст события
	Data     interface{} `json:"data,omitempty"` // данные события
}
