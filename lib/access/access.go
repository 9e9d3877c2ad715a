package access

import (
	"hr-suite-backend/lib/claims"
	"hr-suite-backend/lib/rbac"
	"hr-suite-backend/models"
	"strings"

	"github.com/pkg/errors"
)

type Paths struct {
	SignIn          string
	SignUp          string
	RoleSetup       string
	PendingApproval string
	Unauthorized    string
	// Public дополнительные публичные разделы (health, webhooks, API страниц настройки роли)
	Public []string
}

// Request вход проверки. Identity == nil - пользователь не аутентифицирован
// (в том числе если claims не удалось получить или проверить).
type Request struct {
	Path     string
	Identity *claims.Identity
}

type Provider interface {
	Evaluate(req Request) Decision
	Landing(role models.UserRole) string
	Paths() Paths
}

var Instance Provider

func NewHandler(paths Paths, policy *rbac.RoutePolicy) {
	engine, err := New(paths, policy, DefaultLanding())
	if err != nil {
		panic(err.Error())
	}
	Instance = engine
}

func DefaultLanding() map[models.UserRole]string {
	return map[models.UserRole]string{
		models.AdministratorRole:  "/admin",
		models.HRManagerRole:      "/hr",
		models.FinanceManagerRole: "/finance",
		models.SupervisorRole:     "/supervisor",
		models.EmployeeRole:       "/employee",
	}
}

// Engine - автомат проверки доступа. Неизменяем после создания, Evaluate - чистая функция
// от (identity, path, таблица доступа), поэтому один экземпляр обслуживает все запросы без блокировок.
type Engine struct {
	paths   Paths
	public  []string
	policy  *rbac.RoutePolicy
	landing map[models.UserRole]string
}

func New(paths Paths, policy *rbac.RoutePolicy, landing map[models.UserRole]string) (*Engine, error) {
	required := map[string]string{
		"sign in":          paths.SignIn,
		"sign up":          paths.SignUp,
		"role setup":       paths.RoleSetup,
		"pending approval": paths.PendingApproval,
		"unauthorized":     paths.Unauthorized,
	}
	for name, path := range required {
		if strings.TrimSpace(path) == "" {
			return nil, errors.Errorf("не задан путь страницы %s", name)
		}
	}
	if policy == nil {
		return nil, errors.New("не задана таблица доступа")
	}
	e := &Engine{
		paths: Paths{
			SignIn:          rbac.NormalizePath(paths.SignIn),
			SignUp:          rbac.NormalizePath(paths.SignUp),
			RoleSetup:       rbac.NormalizePath(paths.RoleSetup),
			PendingApproval: rbac.NormalizePath(paths.PendingApproval),
			Unauthorized:    rbac.NormalizePath(paths.Unauthorized),
		},
		policy:  policy,
		landing: map[models.UserRole]string{},
	}
	// страницы, на которых снимаются состояния "нет роли" и "ожидает подтверждения", всегда публичные
	e.public = append(e.public, e.paths.RoleSetup, e.paths.PendingApproval)
	for _, path := range paths.Public {
		e.public = append(e.public, rbac.NormalizePath(path))
	}
	e.paths.Public = append([]string{}, e.public...)

	for _, role := range models.AllUserRoles {
		page, ok := landing[role]
		if !ok {
			return nil, errors.Errorf("не задана стартовая страница для роли %s", role)
		}
		page = rbac.NormalizePath(page)
		if page == "/" {
			return nil, errors.Errorf("стартовая страница роли %s не может быть корнем", role)
		}
		if roles, found := policy.RequiredRoles(page); found && !roles.Contains(role) {
			return nil, errors.Errorf("стартовая страница %s недоступна роли %s", page, role)
		}
		e.landing[role] = page
	}
	return e, nil
}

func (e *Engine) Paths() Paths {
	paths := e.paths
	paths.Public = append([]string{}, e.paths.Public...)
	return paths
}

func (e *Engine) Landing(role models.UserRole) string {
	if page, ok := e.landing[role]; ok {
		return page
	}
	return e.paths.Unauthorized
}

// Evaluate проверки идут строго по порядку, первая сработавшая определяет результат:
//  1. публичный раздел - пропускаем без проверок;
//  2. нет пользователя - на вход (страницы входа/регистрации доступны анониму);
//  3. нет роли - на страницу выбора роли;
//  4. роль не подтверждена (явный false) - на страницу ожидания;
//  5. авторизованный пользователь на странице входа - на его стартовую страницу;
//  6. корень - на стартовую страницу;
//  7. проверка роли по таблице доступа.
//
// Разделы, которых нет в таблице, доступны (fail-open), разделы из таблицы закрыты для
// ролей не из списка (fail-closed).
func (e *Engine) Evaluate(req Request) Decision {
	path := rbac.NormalizePath(req.Path)

	if e.isPublic(path) {
		return Allow(PublicRouteReason)
	}

	if req.Identity == nil {
		if e.isAuthPage(path) {
			return Allow(PublicRouteReason)
		}
		return Redirect(e.paths.SignIn, UnauthenticatedReason, Metadata{Path: path})
	}
	identity := *req.Identity

	if !identity.HasRole() {
		if isPage(path, e.paths.RoleSetup) {
			return Allow(NoRoleReason)
		}
		return Redirect(e.paths.RoleSetup, NoRoleReason, Metadata{Path: path})
	}

	if identity.PendingApproval() {
		if isPage(path, e.paths.PendingApproval) {
			return Allow(NotApprovedReason)
		}
		return Redirect(e.paths.PendingApproval, NotApprovedReason, Metadata{Path: path, CurrentRole: identity.Role})
	}

	if e.isAuthPage(path) {
		return Redirect(e.Landing(identity.Role), AlreadyAuthenticatedReason, Metadata{})
	}

	if path == "/" {
		return Redirect(e.Landing(identity.Role), LandingReason, Metadata{})
	}

	requiredRoles, found := e.policy.RequiredRoles(path)
	if !found || requiredRoles.Contains(identity.Role) {
		return Allow(AuthorizedReason)
	}
	return Redirect(e.paths.Unauthorized, InsufficientRoleReason, Metadata{
		Path:          path,
		CurrentRole:   identity.Role,
		RequiredRoles: requiredRoles,
	})
}

func (e *Engine) isPublic(path string) bool {
	for _, public := range e.public {
		if isPage(path, public) {
			return true
		}
	}
	return false
}

func (e *Engine) isAuthPage(path string) bool {
	return isPage(path, e.paths.SignIn) || isPage(path, e.paths.SignUp)
}

// isPage путь совпадает со страницей или вложен в неё по сегментам, регистр не учитывается
func isPage(path, page string) bool {
	path, page = strings.ToLower(path), strings.ToLower(page)
	if page == "/" {
		return path == "/"
	}
	return path == page || strings.HasPrefix(path, page+"/")
}
