package models

type Module string

const (
	UsersModule       Module = "USERS"
	EmployeesModule   Module = "EMPLOYEES"
	LeavesModule      Module = "LEAVES"
	PayrollModule     Module = "PAYROLL"
	FinanceModule     Module = "FINANCE"
	RecruitmentModule Module = "RECRUITMENT"
	ProfileModule     Module = "PROFILE"
)

type Permission string

const (
	ManageUsersPermission          Permission = "MANAGE_USERS"
	ApproveUsersPermission         Permission = "APPROVE_USERS"
	ManageEmployeesPermission      Permission = "MANAGE_EMPLOYEES"
	ViewEmployeesPermission        Permission = "VIEW_EMPLOYEES"
	ViewTeamPermission             Permission = "VIEW_TEAM"
	ApproveLeavesPermission        Permission = "APPROVE_LEAVES"
	RequestLeavePermission         Permission = "REQUEST_LEAVE"
	ManagePayrollPermission        Permission = "MANAGE_PAYROLL"
	ViewPayrollPermission          Permission = "VIEW_PAYROLL"
	ManageFinancePermission        Permission = "MANAGE_FINANCE"
	ViewFinancialReportsPermission Permission = "VIEW_FINANCIAL_REPORTS"
	ManageRecruitmentPermission    Permission = "MANAGE_RECRUITMENT"
	ViewOwnDataPermission          Permission = "VIEW_OWN_DATA"
)

// модуль, к которому относится разрешение (для фронта)
var permissionModule = map[Permission]Module{
	ManageUsersPermission:          UsersModule,
	ApproveUsersPermission:         UsersModule,
	ManageEmployeesPermission:      EmployeesModule,
	ViewEmployeesPermission:        EmployeesModule,
	ViewTeamPermission:             EmployeesModule,
	ApproveLeavesPermission:        LeavesModule,
	RequestLeavePermission:         LeavesModule,
	ManagePayrollPermission:        PayrollModule,
	ViewPayrollPermission:          PayrollModule,
	ManageFinancePermission:        FinanceModule,
	ViewFinancialReportsPermission: FinanceModule,
	ManageRecruitmentPermission:    RecruitmentModule,
	ViewOwnDataPermission:          ProfileModule,
}

func (p Permission) Module() Module {
	return permissionModule[p]
}
