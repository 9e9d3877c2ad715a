package rbac

import (
	"hr-suite-backend/models"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// RoleSet набор ролей без повторов в каноническом порядке
type RoleSet []models.UserRole

func NewRoleSet(roles ...models.UserRole) RoleSet {
	set := RoleSet{}
	for _, role := range roles {
		if role == "" || slices.Contains(set, role) {
			continue
		}
		set = append(set, role)
	}
	slices.SortStableFunc(set, func(a, b models.UserRole) int {
		return models.RoleOrder(a) - models.RoleOrder(b)
	})
	return set
}

func (s RoleSet) Contains(role models.UserRole) bool {
	if role == "" {
		return false
	}
	return slices.Contains(s, role)
}

func (s RoleSet) Strings() []string {
	result := make([]string, 0, len(s))
	for _, role := range s {
		result = append(result, string(role))
	}
	return result
}

// String роли через запятую (формат параметра required в редиректе)
func (s RoleSet) String() string {
	return strings.Join(s.Strings(), ",")
}

type RouteRule struct {
	Prefix string
	Roles  RoleSet
}

// RoutePolicy таблица "префикс пути -> допустимые роли".
// Сопоставление - проверка строкового префикса (не regexp) без учета регистра, как и роутинг fiber,
// при нескольких совпадениях действует самый длинный префикс независимо от порядка записей в таблице.
type RoutePolicy struct {
	rules []RouteRule
}

func NewRoutePolicy(rules ...RouteRule) (*RoutePolicy, error) {
	policy := &RoutePolicy{}
	seen := map[string]bool{}
	for _, rule := range rules {
		prefix := MatchKey(rule.Prefix)
		if strings.TrimSpace(rule.Prefix) == "" {
			return nil, errors.New("пустой префикс в таблице доступа")
		}
		if seen[prefix] {
			return nil, errors.Errorf("префикс %q задан в таблице доступа более одного раза", prefix)
		}
		roles := NewRoleSet(rule.Roles...)
		if len(roles) == 0 {
			return nil, errors.Errorf("для префикса %q не указаны роли", prefix)
		}
		for _, role := range roles {
			if !role.IsValid() {
				return nil, errors.Errorf("неизвестная роль %q для префикса %q", role, prefix)
			}
		}
		seen[prefix] = true
		policy.rules = append(policy.rules, RouteRule{Prefix: prefix, Roles: roles})
	}
	return policy, nil
}

// MustRoutePolicy для таблиц, собираемых при старте: ошибка конфигурации - паника
func MustRoutePolicy(rules ...RouteRule) *RoutePolicy {
	policy, err := NewRoutePolicy(rules...)
	if err != nil {
		panic(err.Error())
	}
	return policy
}

// RequiredRoles роли, необходимые для пути. false - путь таблицей не ограничен.
func (p *RoutePolicy) RequiredRoles(path string) (RoleSet, bool) {
	rule, found := p.Match(path)
	if !found {
		return nil, false
	}
	return slices.Clone(rule.Roles), true
}

func (p *RoutePolicy) Match(path string) (RouteRule, bool) {
	if p == nil {
		return RouteRule{}, false
	}
	normalizedPath := MatchKey(path)
	var (
		best  RouteRule
		found bool
	)
	for _, rule := range p.rules {
		if !strings.HasPrefix(normalizedPath, rule.Prefix) {
			continue
		}
		if !found || len(rule.Prefix) > len(best.Prefix) {
			best = rule
			found = true
		}
	}
	return best, found
}

func (p *RoutePolicy) Rules() []RouteRule {
	if p == nil {
		return nil
	}
	return slices.Clone(p.rules)
}

// MatchKey форма пути для сравнения с таблицами: нормализованный путь в нижнем регистре
func MatchKey(path string) string {
	return strings.ToLower(NormalizePath(path))
}

func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	return path
}
