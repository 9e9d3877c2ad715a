package rbac

import (
	"hr-suite-backend/models"
	"slices"
	"strings"
)

// Provider - запросы к таблице разрешений ролей. Все методы - чистые поиски без побочных эффектов.
type Provider interface {
	PermissionsOf(role models.UserRole) []models.Permission
	HasPermission(role models.UserRole, permission models.Permission) bool
	// HasAny пустой список - false
	HasAny(role models.UserRole, permissions ...models.Permission) bool
	// HasAll пустой список - true, поэтому пустой список требований никогда не означает отказ
	HasAll(role models.UserRole, permissions ...models.Permission) bool
	PermissionsByModule(role models.UserRole) map[models.Module][]models.Permission
	Roles() []models.UserRole
}

var Instance Provider

func NewHandler() {
	Instance = NewPermissionTable(defaultRolePermissions())
}

type permissionSet map[models.Permission]struct{}

// PermissionTable неизменяемая после создания, читается без синхронизации
type PermissionTable struct {
	roles       []models.UserRole
	permissions map[models.UserRole]permissionSet
	ordered     map[models.UserRole][]models.Permission
}

func NewPermissionTable(table map[models.UserRole][]models.Permission) *PermissionTable {
	i := &PermissionTable{
		permissions: map[models.UserRole]permissionSet{},
		ordered:     map[models.UserRole][]models.Permission{},
	}
	// у каждой роли есть запись, пусть даже пустая
	for _, role := range models.AllUserRoles {
		i.permissions[role] = permissionSet{}
		i.ordered[role] = []models.Permission{}
	}
	for role, permissions := range table {
		if _, ok := i.permissions[role]; !ok {
			i.permissions[role] = permissionSet{}
			i.ordered[role] = []models.Permission{}
		}
		for _, permission := range permissions {
			if _, found := i.permissions[role][permission]; found {
				continue
			}
			i.permissions[role][permission] = struct{}{}
			i.ordered[role] = append(i.ordered[role], permission)
		}
	}
	for role := range i.permissions {
		i.roles = append(i.roles, role)
	}
	slices.SortFunc(i.roles, func(a, b models.UserRole) int {
		if diff := models.RoleOrder(a) - models.RoleOrder(b); diff != 0 {
			return diff
		}
		return strings.Compare(string(a), string(b))
	})
	return i
}

func (i *PermissionTable) PermissionsOf(role models.UserRole) []models.Permission {
	return slices.Clone(i.ordered[role])
}

func (i *PermissionTable) HasPermission(role models.UserRole, permission models.Permission) bool {
	_, ok := i.permissions[role][permission]
	return ok
}

func (i *PermissionTable) HasAny(role models.UserRole, permissions ...models.Permission) bool {
	for _, permission := range permissions {
		if i.HasPermission(role, permission) {
			return true
		}
	}
	return false
}

func (i *PermissionTable) HasAll(role models.UserRole, permissions ...models.Permission) bool {
	for _, permission := range permissions {
		if !i.HasPermission(role, permission) {
			return false
		}
	}
	return true
}

// PermissionsByModule разрешения роли, сгруппированные по модулям (структура для фронта)
func (i *PermissionTable) PermissionsByModule(role models.UserRole) map[models.Module][]models.Permission {
	result := map[models.Module][]models.Permission{}
	for _, permission := range i.ordered[role] {
		module := permission.Module()
		result[module] = append(result[module], permission)
	}
	return result
}

func (i *PermissionTable) Roles() []models.UserRole {
	return slices.Clone(i.roles)
}
