package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hr-suite-backend/config"
	"hr-suite-backend/lib/access"
	"hr-suite-backend/lib/claims"
	"hr-suite-backend/lib/guard"
	"hr-suite-backend/lib/rbac"
	"hr-suite-backend/models"
	apimodels "hr-suite-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) *fiber.App {
	conf := new(config.Configuration)
	conf.Auth.JWTSecret = testSecret
	conf.Auth.SessionCookie = "__session"
	config.Conf = conf

	rbac.NewHandler()
	access.NewHandler(access.Paths{
		SignIn:          "/sign-in",
		SignUp:          "/sign-up",
		RoleSetup:       "/role-setup",
		PendingApproval: "/pending-approval",
		Unauthorized:    "/unauthorized",
		Public:          []string{"/health"},
	}, rbac.DefaultRoutePolicy())

	ok := func(ctx *fiber.Ctx) error {
		return ctx.JSON(apimodels.NewResponse(GetUserID(ctx)))
	}

	app := fiber.New()
	app.Get("/unchecked", RequireAccess(guard.Permission(models.ViewOwnDataPermission)), ok)
	app.Use(SessionClaims(), AccessControl())
	app.Get("/health", ok)
	app.Get("/sign-in", ok)
	app.Get("/hr/employees", ok)
	app.Get("/employee", ok)
	app.Get("/admin", ok)
	app.Get("/finance/accounts-receivable", ok)
	app.Get("/api/v1/access/accounts/pending", RequireAccess(guard.Permission(models.ApproveUsersPermission)), ok)
	app.Get("/api/v1/payroll/run", RequireAccess(guard.Permission(models.ManagePayrollPermission)), ok)
	return app
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func sessionClaims(role string, approved any) jwt.MapClaims {
	metadata := map[string]interface{}{}
	if role != "" {
		metadata["role"] = role
	}
	if approved != nil {
		metadata["is_approved"] = approved
	}
	return jwt.MapClaims{
		"sub":             "user-1",
		"public_metadata": metadata,
	}
}

func doRequest(t *testing.T, app *fiber.App, path, token string) *http.Response {
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response) apimodels.Response {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var result apimodels.Response
	require.NoError(t, json.Unmarshal(body, &result))
	return result
}

func TestAccessControl(t *testing.T) {
	app := newTestApp(t)

	t.Run(`public route without token`, func(t *testing.T) {
		resp := doRequest(t, app, "/health", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`anonymous page request redirected to sign in`, func(t *testing.T) {
		resp := doRequest(t, app, "/hr/employees", "")
		require.Equal(t, fiber.StatusFound, resp.StatusCode)
		require.Equal(t, "/sign-in?path=%2Fhr%2Femployees", resp.Header.Get(fiber.HeaderLocation))
	})

	t.Run(`token signed with another key is anonymous`, func(t *testing.T) {
		token := sign(t, "other-secret", sessionClaims("hr_manager", true))
		resp := doRequest(t, app, "/hr/employees", token)
		require.Equal(t, fiber.StatusFound, resp.StatusCode)
		require.Equal(t, "/sign-in?path=%2Fhr%2Femployees", resp.Header.Get(fiber.HeaderLocation))
	})

	t.Run(`anonymous api request gets 401`, func(t *testing.T) {
		resp := doRequest(t, app, "/api/v1/access/accounts/pending", "")
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		result := decodeResponse(t, resp)
		require.Equal(t, "fail", result.Status)
		require.Equal(t, string(access.UnauthenticatedReason), result.Message)
	})

	t.Run(`authorized role passes`, func(t *testing.T) {
		resp := doRequest(t, app, "/hr/employees", sign(t, testSecret, sessionClaims("hr_manager", true)))
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, "user-1", decodeResponse(t, resp).Data)
	})

	t.Run(`session cookie accepted`, func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/hr/employees", nil)
		req.AddCookie(&http.Cookie{Name: "__session", Value: sign(t, testSecret, sessionClaims("administrator", nil))})
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`insufficient role redirected with metadata`, func(t *testing.T) {
		resp := doRequest(t, app, "/hr/employees", sign(t, testSecret, sessionClaims("employee", true)))
		require.Equal(t, fiber.StatusFound, resp.StatusCode)
		require.Equal(t, "/unauthorized?current=employee&path=%2Fhr%2Femployees&required=administrator%2Chr_manager",
			resp.Header.Get(fiber.HeaderLocation))
	})

	t.Run(`insufficient role on api gets 403`, func(t *testing.T) {
		resp := doRequest(t, app, "/api/v1/access/accounts/pending", sign(t, testSecret, sessionClaims("employee", true)))
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		result := decodeResponse(t, resp)
		require.Equal(t, string(access.InsufficientRoleReason), result.Message)
		data, ok := result.Data.(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "employee", data["current"])
	})

	t.Run(`listed route closed in any letter case`, func(t *testing.T) {
		resp := doRequest(t, app, "/ADMIN", sign(t, testSecret, sessionClaims("employee", true)))
		require.Equal(t, fiber.StatusFound, resp.StatusCode)
		require.Equal(t, "/unauthorized?current=employee&path=%2FADMIN&required=administrator",
			resp.Header.Get(fiber.HeaderLocation))

		resp = doRequest(t, app, "/Finance/Accounts-Receivable", sign(t, testSecret, sessionClaims("administrator", true)))
		require.Equal(t, fiber.StatusFound, resp.StatusCode)
		require.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderLocation), "/unauthorized?current=administrator"))

		resp = doRequest(t, app, "/Admin", sign(t, testSecret, sessionClaims("administrator", true)))
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`no role redirected to role setup`, func(t *testing.T) {
		resp := doRequest(t, app, "/employee", sign(t, testSecret, sessionClaims("", nil)))
		require.Equal(t, fiber.StatusFound, resp.StatusCode)
		require.Equal(t, "/role-setup?path=%2Femployee", resp.Header.Get(fiber.HeaderLocation))
	})

	t.Run(`pending approval redirected`, func(t *testing.T) {
		resp := doRequest(t, app, "/employee", sign(t, testSecret, sessionClaims("employee", false)))
		require.Equal(t, fiber.StatusFound, resp.StatusCode)
		require.Equal(t, "/pending-approval?current=employee&path=%2Femployee", resp.Header.Get(fiber.HeaderLocation))
	})

	t.Run(`authorized user bounced from sign in`, func(t *testing.T) {
		resp := doRequest(t, app, "/sign-in", sign(t, testSecret, sessionClaims("supervisor", true)))
		require.Equal(t, fiber.StatusFound, resp.StatusCode)
		require.Equal(t, "/supervisor", resp.Header.Get(fiber.HeaderLocation))
	})

	t.Run(`anonymous user stays on sign in`, func(t *testing.T) {
		resp := doRequest(t, app, "/sign-in", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestEmptySigningKey(t *testing.T) {
	newTestApp(t)
	config.Conf.Auth.JWTSecret = ""

	app := fiber.New()
	app.Use(SessionClaims(), AccessControl())
	app.Get("/admin", func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) })

	// токен, подписанный пустым ключом, не дает сессии
	resp := doRequest(t, app, "/admin", sign(t, "", sessionClaims("administrator", true)))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/sign-in?path=%2Fadmin", resp.Header.Get(fiber.HeaderLocation))
}

func TestRequireAccess(t *testing.T) {
	app := newTestApp(t)

	t.Run(`permission granted`, func(t *testing.T) {
		resp := doRequest(t, app, "/api/v1/access/accounts/pending", sign(t, testSecret, sessionClaims("hr_manager", true)))
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`missing permission reported`, func(t *testing.T) {
		// раздел не в таблице доступа, отказывает только проверка прав
		resp := doRequest(t, app, "/api/v1/payroll/run", sign(t, testSecret, sessionClaims("administrator", true)))
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		result := decodeResponse(t, resp)
		data, ok := result.Data.(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "administrator", data["role"])
		require.Equal(t, []interface{}{string(models.ManagePayrollPermission)}, data["missing"])
	})

	t.Run(`role pending approval has no permissions`, func(t *testing.T) {
		app := fiber.New()
		app.Use(func(ctx *fiber.Ctx) error {
			pending := false
			ctx.Locals(identityLocalsKey, &claims.Identity{UserID: "user-1", Role: models.HRManagerRole, IsApproved: &pending})
			return ctx.Next()
		})
		app.Get("/approve", RequireAccess(guard.Permission(models.ApproveUsersPermission)), func(ctx *fiber.Ctx) error {
			return ctx.SendStatus(fiber.StatusOK)
		})
		resp := doRequest(t, app, "/approve", "")
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		data, ok := decodeResponse(t, resp).Data.(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "not-approved", data["reason"])
	})

	t.Run(`identity not resolved`, func(t *testing.T) {
		resp := doRequest(t, app, "/unchecked", "")
		require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(4, "/skip"))
	handler := func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) }
	app.Post("/data", handler)
	app.Post("/skip/data", handler)

	post := func(path, body string) int {
		req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	require.Equal(t, fiber.StatusOK, post("/data", "abc"))
	require.Equal(t, fiber.StatusRequestEntityTooLarge, post("/data", "abcdef"))
	require.Equal(t, fiber.StatusOK, post("/skip/data", "abcdef"))
}
