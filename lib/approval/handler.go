package approvalhandler

import (
	"context"
	"hr-suite-backend/db"
	"hr-suite-backend/lib/access"
	accountstore "hr-suite-backend/lib/approval/store"
	"hr-suite-backend/lib/claims"
	baseworker "hr-suite-backend/lib/utils/base-worker"
	"hr-suite-backend/models"
	accessapimodels "hr-suite-backend/models/api/access"
	dbmodels "hr-suite-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrAccountNotFound  = errors.New("пользователь не найден")
	ErrRoleNotGrantable = errors.New("недостаточно прав для назначения этой роли")
)

type Provider interface {
	Status(externalID string) (accessapimodels.ApprovalStatus, error)
	RequestRole(externalID string, role models.UserRole) (accessapimodels.ApprovalStatus, error)
	// Approve подтверждает роль. Роль выше собственной роли подтверждающего назначить нельзя.
	Approve(externalID string, approver Approver) (accessapimodels.AccessAccount, error)
	ListPending(page, limit int) ([]accessapimodels.AccessAccount, error)
	// Watch периодически проверяет статус и вызывает notify при каждом изменении.
	// Задача сама останавливается после подтверждения, Stop у handle - при уходе со страницы.
	Watch(ctx context.Context, externalID string, notify func(status accessapimodels.ApprovalStatus)) *baseworker.Handle
}

var Instance Provider

// Approver кто подтверждает роль
type Approver struct {
	UserID string
	Role   models.UserRole
}

// CanGrant роль не выше собственной: порядок ролей от администратора к сотруднику
func (a Approver) CanGrant(role models.UserRole) bool {
	if !a.Role.IsValid() || !role.IsValid() {
		return false
	}
	return models.RoleOrder(a.Role) <= models.RoleOrder(role)
}

// ForSession сверяет статус записи с утверждениями сессии. Доступ проверяется по сессии,
// поэтому до перевыпуска токена провайдером Landing не отдается.
func ForSession(status accessapimodels.ApprovalStatus, identity claims.Identity) accessapimodels.ApprovalStatus {
	if status.IsApproved && (identity.PendingApproval() || identity.Role != status.Role) {
		status.Landing = ""
	}
	return status
}

func NewHandler(pollInterval time.Duration) {
	Instance = NewInstance(accountstore.NewInstance(db.DB), access.Instance, pollInterval)
}

func NewInstance(store accountstore.Provider, engine access.Provider, pollInterval time.Duration) Provider {
	return impl{
		store:        store,
		engine:       engine,
		pollInterval: pollInterval,
	}
}

type impl struct {
	store        accountstore.Provider
	engine       access.Provider
	pollInterval time.Duration
}

func (i impl) Status(externalID string) (accessapimodels.ApprovalStatus, error) {
	rec, err := i.store.GetByExternalID(externalID)
	if err != nil {
		return accessapimodels.ApprovalStatus{}, errors.Wrap(err, "ошибка получения статуса подтверждения")
	}
	return i.toStatus(rec), nil
}

func (i impl) RequestRole(externalID string, role models.UserRole) (accessapimodels.ApprovalStatus, error) {
	if !role.IsValid() {
		return accessapimodels.ApprovalStatus{}, errors.New("указана неизвестная роль")
	}
	rec, err := i.store.RequestRole(externalID, role)
	if err != nil {
		return accessapimodels.ApprovalStatus{}, err
	}
	log.WithField("user_id", externalID).
		WithField("requested_role", role).
		Info("запрошена роль")
	return i.toStatus(rec), nil
}

func (i impl) Approve(externalID string, approver Approver) (accessapimodels.AccessAccount, error) {
	current, err := i.store.GetByExternalID(externalID)
	if err != nil {
		return accessapimodels.AccessAccount{}, errors.Wrap(err, "ошибка получения пользователя")
	}
	if current == nil {
		return accessapimodels.AccessAccount{}, ErrAccountNotFound
	}
	granted := current.Role
	if current.RequestedRole != "" {
		granted = current.RequestedRole
	}
	if !approver.CanGrant(granted) {
		log.WithField("user_id", externalID).
			WithField("approved_by", approver.UserID).
			WithField("approver_role", approver.Role).
			WithField("role", granted).
			Warn("попытка подтвердить роль выше собственной")
		return accessapimodels.AccessAccount{}, ErrRoleNotGrantable
	}

	rec, err := i.store.Approve(externalID, approver.UserID)
	if err != nil {
		return accessapimodels.AccessAccount{}, err
	}
	if rec == nil {
		return accessapimodels.AccessAccount{}, ErrAccountNotFound
	}
	log.WithField("user_id", externalID).
		WithField("approved_by", approver.UserID).
		WithField("role", rec.Role).
		Info("роль подтверждена")
	return rec.ToModel(), nil
}

func (i impl) ListPending(page, limit int) ([]accessapimodels.AccessAccount, error) {
	list, err := i.store.ListPending(page, limit)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка ожидающих подтверждения")
	}
	result := make([]accessapimodels.AccessAccount, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) Watch(ctx context.Context, externalID string, notify func(status accessapimodels.ApprovalStatus)) *baseworker.Handle {
	worker := baseworker.NewInstance("approval_watch", 0, i.pollInterval)
	logger := worker.GetLogger().WithField("user_id", externalID)
	var (
		last    accessapimodels.ApprovalStatus
		hasLast bool
	)
	return worker.Start(ctx, func(ctx context.Context) bool {
		status, err := i.Status(externalID)
		if err != nil {
			// временная ошибка хранилища: пробуем на следующем тике
			logger.WithError(err).Warn("не удалось проверить статус подтверждения")
			return false
		}
		if !hasLast || status != last {
			notify(status)
			last = status
			hasLast = true
		}
		return status.IsApproved
	})
}

func (i impl) toStatus(rec *dbmodels.AccessAccount) accessapimodels.ApprovalStatus {
	if rec == nil {
		return accessapimodels.ApprovalStatus{}
	}
	status := accessapimodels.ApprovalStatus{
		Role:          rec.Role,
		RequestedRole: rec.RequestedRole,
		IsApproved:    rec.IsApproved,
	}
	// Landing по записи, перед отдачей клиенту сверяется с сессией через ForSession
	if rec.IsApproved && rec.Role != "" && i.engine != nil {
		status.Landing = i.engine.Landing(rec.Role)
	}
	return status
}
