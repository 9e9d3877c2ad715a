package rbac

import (
	"hr-suite-backend/models"
)

var (
	AdminRoleSet             = NewRoleSet(models.AdministratorRole)
	AdminHrRoleSet           = NewRoleSet(models.AdministratorRole, models.HRManagerRole)
	AdminFinanceRoleSet      = NewRoleSet(models.AdministratorRole, models.FinanceManagerRole)
	FinanceRoleSet           = NewRoleSet(models.FinanceManagerRole)
	AdminHrFinanceRoleSet    = NewRoleSet(models.AdministratorRole, models.HRManagerRole, models.FinanceManagerRole)
	AdminHrSupervisorRoleSet = NewRoleSet(models.AdministratorRole, models.HRManagerRole, models.SupervisorRole)
	AllRoles                 = NewRoleSet(models.AllUserRoles...)
)

func defaultRolePermissions() map[models.UserRole][]models.Permission {
	return map[models.UserRole][]models.Permission{
		models.AdministratorRole: {
			models.ManageUsersPermission,
			models.ApproveUsersPermission,
			models.ManageEmployeesPermission,
			models.ViewEmployeesPermission,
			models.ViewTeamPermission,
			models.ApproveLeavesPermission,
			models.ViewPayrollPermission,
			models.ViewFinancialReportsPermission,
			models.ManageRecruitmentPermission,
			models.ViewOwnDataPermission,
		},
		models.HRManagerRole: {
			models.ApproveUsersPermission,
			models.ManageEmployeesPermission,
			models.ViewEmployeesPermission,
			models.ViewTeamPermission,
			models.ApproveLeavesPermission,
			models.ManagePayrollPermission,
			models.ViewPayrollPermission,
			models.ManageRecruitmentPermission,
			models.ViewOwnDataPermission,
			models.RequestLeavePermission,
		},
		models.FinanceManagerRole: {
			models.ManagePayrollPermission,
			models.ViewPayrollPermission,
			models.ManageFinancePermission,
			models.ViewFinancialReportsPermission,
			models.ViewOwnDataPermission,
			models.RequestLeavePermission,
		},
		models.SupervisorRole: {
			models.ViewTeamPermission,
			models.ApproveLeavesPermission,
			models.ViewOwnDataPermission,
			models.RequestLeavePermission,
		},
		models.EmployeeRole: {
			models.ViewOwnDataPermission,
			models.RequestLeavePermission,
		},
	}
}

// DefaultRoutePolicy таблица доступа к разделам приложения.
// Разделы, которых нет в таблице, доступны любой роли.
func DefaultRoutePolicy() *RoutePolicy {
	return MustRoutePolicy(
		RouteRule{Prefix: "/admin", Roles: AdminRoleSet},
		RouteRule{Prefix: "/hr", Roles: AdminHrRoleSet},
		RouteRule{Prefix: "/recruitment", Roles: AdminHrRoleSet},
		RouteRule{Prefix: "/payroll", Roles: AdminHrFinanceRoleSet},
		RouteRule{Prefix: "/finance", Roles: AdminFinanceRoleSet},
		// дебиторка только у финансов, администратор сюда не допускается
		RouteRule{Prefix: "/finance/accounts-receivable", Roles: FinanceRoleSet},
		RouteRule{Prefix: "/reports/financial", Roles: AdminFinanceRoleSet},
		RouteRule{Prefix: "/supervisor", Roles: AdminHrSupervisorRoleSet},
		RouteRule{Prefix: "/employee", Roles: AllRoles},
		RouteRule{Prefix: "/api/v1/access/accounts", Roles: AdminHrRoleSet},
	)
}
