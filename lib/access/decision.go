package access

import (
	"hr-suite-backend/lib/rbac"
	"hr-suite-backend/models"
	"net/url"
)

type Outcome string

const (
	AllowOutcome    Outcome = "allow"
	RedirectOutcome Outcome = "redirect"
)

// Reason причины редиректа. Значения показываются пользователю, внутренних подробностей здесь быть не должно.
type Reason string

const (
	PublicRouteReason          Reason = "public-route"
	AuthorizedReason           Reason = "authorized"
	UnauthenticatedReason      Reason = "unauthenticated"
	NoRoleReason               Reason = "no-role"
	NotApprovedReason          Reason = "not-approved"
	AlreadyAuthenticatedReason Reason = "already-authenticated"
	LandingReason              Reason = "landing"
	InsufficientRoleReason     Reason = "insufficient-role"
)

const (
	PathParam     = "path"
	RequiredParam = "required"
	CurrentParam  = "current"
)

// Metadata данные для страницы отказа, повторно для авторизации не используются
type Metadata struct {
	Path          string          `json:"path,omitempty"`
	CurrentRole   models.UserRole `json:"current,omitempty"`
	RequiredRoles rbac.RoleSet    `json:"required,omitempty"`
}

// Decision результат одной проверки запроса: Allow либо Redirect(target, reason, metadata).
// Вычисляется на каждый запрос, не кешируется и не сохраняется.
type Decision struct {
	Outcome  Outcome  `json:"outcome"`
	Target   string   `json:"target,omitempty"`
	Reason   Reason   `json:"reason"`
	Metadata Metadata `json:"metadata"`
}

func Allow(reason Reason) Decision {
	return Decision{Outcome: AllowOutcome, Reason: reason}
}

func Redirect(target string, reason Reason, metadata Metadata) Decision {
	return Decision{
		Outcome:  RedirectOutcome,
		Target:   target,
		Reason:   reason,
		Metadata: metadata,
	}
}

func (d Decision) Allowed() bool {
	return d.Outcome == AllowOutcome
}

// Location адрес редиректа с параметрами path, required, current
func (d Decision) Location() string {
	if d.Allowed() {
		return ""
	}
	query := url.Values{}
	if d.Metadata.Path != "" {
		query.Set(PathParam, d.Metadata.Path)
	}
	if len(d.Metadata.RequiredRoles) > 0 {
		query.Set(RequiredParam, d.Metadata.RequiredRoles.String())
	}
	if d.Metadata.CurrentRole != "" {
		query.Set(CurrentParam, string(d.Metadata.CurrentRole))
	}
	if len(query) == 0 {
		return d.Target
	}
	return d.Target + "?" + query.Encode()
}
