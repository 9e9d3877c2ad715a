package accountstore

import (
	"hr-suite-backend/models"
	dbmodels "hr-suite-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	GetByExternalID(externalID string) (rec *dbmodels.AccessAccount, err error)
	RequestRole(externalID string, role models.UserRole) (*dbmodels.AccessAccount, error)
	Approve(externalID, approvedBy string) (*dbmodels.AccessAccount, error)
	ListPending(page, limit int) (list []dbmodels.AccessAccount, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByExternalID(externalID string) (rec *dbmodels.AccessAccount, err error) {
	err = i.db.Model(dbmodels.AccessAccount{}).
		Where("external_id = ?", externalID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// RequestRole создаёт аккаунт или обновляет запрошенную роль, подтверждение при этом сбрасывается
func (i impl) RequestRole(externalID string, role models.UserRole) (*dbmodels.AccessAccount, error) {
	rec := dbmodels.AccessAccount{
		ExternalID:    externalID,
		RequestedRole: role,
		IsApproved:    false,
	}
	err := i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"requested_role": role, "is_approved": false, "updated_at": time.Now()}),
		}).
		Create(&rec).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сохранения запроса роли")
	}
	return i.GetByExternalID(externalID)
}

// Approve переносит запрошенную роль в назначенную и отмечает подтверждение
func (i impl) Approve(externalID, approvedBy string) (*dbmodels.AccessAccount, error) {
	rec, err := i.GetByExternalID(externalID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	role := rec.Role
	if rec.RequestedRole != "" {
		role = rec.RequestedRole
	}
	now := time.Now()
	err = i.db.
		Model(&dbmodels.AccessAccount{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"role":           role,
			"requested_role": "",
			"is_approved":    true,
			"approved_by":    approvedBy,
			"approved_at":    now,
		}).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка подтверждения роли")
	}
	return i.GetByExternalID(externalID)
}

func (i impl) ListPending(page, limit int) (list []dbmodels.AccessAccount, err error) {
	tx := i.db.Model(dbmodels.AccessAccount{})
	i.setPage(tx, page, limit)
	err = tx.
		Where("is_approved = ?", false).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	if page == 0 || limit == 0 {
		return
	}
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
