package models

import "strings"

type UserRole string

const (
	AdministratorRole  UserRole = "administrator"
	HRManagerRole      UserRole = "hr_manager"
	FinanceManagerRole UserRole = "finance_manager"
	SupervisorRole     UserRole = "supervisor"
	EmployeeRole       UserRole = "employee"
)

// AllUserRoles - канонический порядок ролей (используется при выводе списков ролей)
var AllUserRoles = []UserRole{
	AdministratorRole,
	HRManagerRole,
	FinanceManagerRole,
	SupervisorRole,
	EmployeeRole,
}

var roleHumanName = map[UserRole]string{
	AdministratorRole:  "Администратор",
	HRManagerRole:      "HR-менеджер",
	FinanceManagerRole: "Финансовый менеджер",
	SupervisorRole:     "Руководитель",
	EmployeeRole:       "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, exist := roleHumanName[r]
	return exist
}

// ParseRole возвращает роль по токену из claims, для неизвестного токена - пустую роль
func ParseRole(value string) UserRole {
	role := UserRole(strings.ToLower(strings.TrimSpace(value)))
	if !role.IsValid() {
		return ""
	}
	return role
}

// RoleOrder позиция роли в каноническом порядке, неизвестные роли в конце
func RoleOrder(r UserRole) int {
	for i, role := range AllUserRoles {
		if role == r {
			return i
		}
	}
	return len(AllUserRoles)
}

const SystemUser = "Система"
