package claims

import (
	"hr-suite-backend/models"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Места в claims, где провайдер может хранить роль и статус подтверждения.
// Порядок - приоритет: подтверждённые провайдером данные, затем указанные пользователем, затем устаревшее место.
const (
	ConfirmedLocation    = "public_metadata"
	SelfReportedLocation = "unsafe_metadata"
	LegacyLocation       = "metadata"
)

var locations = []string{ConfirmedLocation, SelfReportedLocation, LegacyLocation}

const (
	RoleKey          = "role"
	IsApprovedKey    = "is_approved"
	RequestedRoleKey = "requested_role"
	SubjectKey       = "sub"
)

// Identity каноническое представление пользователя из claims.
// Пустая роль и nil в IsApproved означают "значение отсутствует".
type Identity struct {
	UserID        string          `json:"user_id"`
	Role          models.UserRole `json:"role"`
	IsApproved    *bool           `json:"is_approved"`
	RequestedRole models.UserRole `json:"requested_role"`
}

func (i Identity) HasRole() bool {
	return i.Role != ""
}

// PendingApproval только явный false означает ожидание подтверждения, отсутствие значения - нет
func (i Identity) PendingApproval() bool {
	return i.IsApproved != nil && !*i.IsApproved
}

// Normalize каждое поле берётся независимо: первое определённое (не nil) значение по порядку мест.
// Неизвестный токен роли превращается в пустую роль.
func Normalize(claims jwt.MapClaims) Identity {
	identity := Identity{}
	if claims == nil {
		return identity
	}
	if sub, ok := claims[SubjectKey].(string); ok {
		identity.UserID = sub
	}
	if value, found := lookup(claims, RoleKey); found {
		identity.Role = parseRole(value)
	}
	if value, found := lookup(claims, IsApprovedKey); found {
		approved := parseApproved(value)
		identity.IsApproved = &approved
	}
	if value, found := lookup(claims, RequestedRoleKey); found {
		identity.RequestedRole = parseRole(value)
	}
	return identity
}

func lookup(claims jwt.MapClaims, key string) (any, bool) {
	for _, location := range locations {
		metadata, ok := claims[location].(map[string]interface{})
		if !ok {
			continue
		}
		if value, exist := metadata[key]; exist && value != nil {
			return value, true
		}
	}
	return nil, false
}

func parseRole(value any) models.UserRole {
	stringRole, ok := value.(string)
	if !ok {
		return ""
	}
	return models.ParseRole(stringRole)
}

// нераспознанное значение считаем явным отказом
func parseApproved(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		approved, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false
		}
		return approved
	default:
		return false
	}
}
