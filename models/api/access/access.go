package accessapimodels

import (
	"hr-suite-backend/models"

	"github.com/pkg/errors"
)

type RoleSetupRequest struct {
	Role string `json:"role"` // Запрашиваемая роль
}

func (r RoleSetupRequest) Validate() error {
	if r.Role == "" {
		return errors.New("не указана роль")
	}
	if models.ParseRole(r.Role) == "" {
		return errors.New("указана неизвестная роль")
	}
	return nil
}

type ApprovalStatus struct {
	Role          models.UserRole `json:"role,omitempty"`           // Назначенная роль
	RequestedRole models.UserRole `json:"requested_role,omitempty"` // Запрошенная роль
	IsApproved    bool            `json:"is_approved"`              // Роль подтверждена
	Landing       string          `json:"landing,omitempty"`        // Стартовая страница роли, пустая пока сессия не подтверждена
}

type AccessAccount struct {
	ID            string          `json:"id"`
	ExternalID    string          `json:"external_id"` // Идентификатор пользователя у провайдера (sub)
	Role          models.UserRole `json:"role,omitempty"`
	RoleName      string          `json:"role_name,omitempty"`
	RequestedRole models.UserRole `json:"requested_role,omitempty"`
	IsApproved    bool            `json:"is_approved"`
	CreatedAt     string          `json:"created_at"`
}

// Me текущий пользователь и его разрешения, сгруппированные по модулям (для фронта)
type Me struct {
	UserID      string                                `json:"user_id"`
	Role        models.UserRole                       `json:"role"`
	RoleName    string                                `json:"role_name"`
	Landing     string                                `json:"landing"`
	Permissions map[models.Module][]models.Permission `json:"permissions"`
}
