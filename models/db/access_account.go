package dbmodels

import (
	"hr-suite-backend/models"
	accessapimodels "hr-suite-backend/models/api/access"
	"time"
)

// AccessAccount состояние доступа пользователя: роль, запрошенная роль и подтверждение.
// Провайдер identity переносит эти значения в claims сессии.
type AccessAccount struct {
	BaseModel
	ExternalID    string          `gorm:"type:varchar(255);uniqueIndex"`
	Role          models.UserRole `gorm:"type:varchar(50)"`
	RequestedRole models.UserRole `gorm:"type:varchar(50)"`
	IsApproved    bool
	ApprovedBy    string `gorm:"type:varchar(255)"`
	ApprovedAt    *time.Time
}

func (r AccessAccount) ToModel() accessapimodels.AccessAccount {
	return accessapimodels.AccessAccount{
		ID:            r.ID,
		ExternalID:    r.ExternalID,
		Role:          r.Role,
		RoleName:      r.Role.ToHuman(),
		RequestedRole: r.RequestedRole,
		IsApproved:    r.IsApproved,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
}
