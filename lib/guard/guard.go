package guard

import (
	"hr-suite-backend/lib/claims"
	"hr-suite-backend/lib/rbac"
	"hr-suite-backend/models"
)

type Status string

const (
	// LoadingStatus identity ещё не получена. Это отдельное состояние, не отказ:
	// иначе на время загрузки показывался бы "доступ запрещён".
	LoadingStatus Status = "loading"
	DeniedStatus  Status = "denied"
	AllowedStatus Status = "allowed"
)

const (
	noRoleReason             = "no-role"
	notApprovedReason        = "not-approved"
	missingPermissionsReason = "missing-permissions"
	roleNotAllowedReason     = "insufficient-role"
)

type Detail struct {
	Role          models.UserRole     `json:"role,omitempty"`
	Reason        string              `json:"reason,omitempty"`
	Missing       []models.Permission `json:"missing,omitempty"`
	RequiredRoles rbac.RoleSet        `json:"required_roles,omitempty"`
}

type Result struct {
	Status Status `json:"status"`
	Detail Detail `json:"detail"`
}

func (r Result) Allowed() bool {
	return r.Status == AllowedStatus
}

// Requirement одно из: список разрешений (все или любое) или список допустимых ролей
type Requirement struct {
	Permissions []models.Permission
	RequireAll  bool
	Roles       rbac.RoleSet
}

func Permission(permission models.Permission) Requirement {
	return Requirement{Permissions: []models.Permission{permission}, RequireAll: true}
}

// AllOf пустой список пропускает любую роль (как HasAll)
func AllOf(permissions ...models.Permission) Requirement {
	return Requirement{Permissions: permissions, RequireAll: true}
}

// AnyOf пустой список не пропускает никого (как HasAny)
func AnyOf(permissions ...models.Permission) Requirement {
	return Requirement{Permissions: permissions}
}

func Roles(roles ...models.UserRole) Requirement {
	return Requirement{Roles: rbac.NewRoleSet(roles...)}
}

// Subject identity вызывающего. Resolved == false - получение claims ещё не завершено.
type Subject struct {
	Resolved bool
	Identity claims.Identity
}

func Loading() Subject {
	return Subject{}
}

func Resolved(identity claims.Identity) Subject {
	return Subject{Resolved: true, Identity: identity}
}

// Guard проверки без ввода-вывода, identity уже получена вызывающим
type Guard struct {
	resolver rbac.Provider
}

func New(resolver rbac.Provider) *Guard {
	return &Guard{resolver: resolver}
}

func (g *Guard) Check(subject Subject, requirement Requirement) Result {
	if !subject.Resolved {
		return Result{Status: LoadingStatus}
	}
	role := subject.Identity.Role
	if role == "" {
		return denied(Detail{Reason: noRoleReason, RequiredRoles: requirement.Roles})
	}
	// роль есть, но еще не подтверждена: права роли не действуют
	if subject.Identity.PendingApproval() {
		return denied(Detail{Role: role, Reason: notApprovedReason, RequiredRoles: requirement.Roles})
	}

	if requirement.Roles != nil {
		if requirement.Roles.Contains(role) {
			return allowed(role)
		}
		return denied(Detail{Role: role, Reason: roleNotAllowedReason, RequiredRoles: requirement.Roles})
	}

	var ok bool
	if requirement.RequireAll {
		ok = g.resolver.HasAll(role, requirement.Permissions...)
	} else {
		ok = g.resolver.HasAny(role, requirement.Permissions...)
	}
	if ok {
		return allowed(role)
	}
	return denied(Detail{Role: role, Reason: missingPermissionsReason, Missing: g.missing(role, requirement.Permissions)})
}

func (g *Guard) missing(role models.UserRole, permissions []models.Permission) []models.Permission {
	var result []models.Permission
	for _, permission := range permissions {
		if !g.resolver.HasPermission(role, permission) {
			result = append(result, permission)
		}
	}
	return result
}

func allowed(role models.UserRole) Result {
	return Result{Status: AllowedStatus, Detail: Detail{Role: role}}
}

func denied(detail Detail) Result {
	return Result{Status: DeniedStatus, Detail: detail}
}
