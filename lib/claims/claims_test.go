package claims

import (
	"testing"

	"hr-suite-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run(`empty claims`, func(t *testing.T) {
		identity := Normalize(nil)
		require.Equal(t, Identity{}, identity)
		require.False(t, identity.HasRole())
		require.False(t, identity.PendingApproval())

		identity = Normalize(jwt.MapClaims{"sub": "user-1"})
		require.Equal(t, "user-1", identity.UserID)
		require.Equal(t, models.UserRole(""), identity.Role)
		require.Nil(t, identity.IsApproved)
	})

	t.Run(`confirmed location wins`, func(t *testing.T) {
		identity := Normalize(jwt.MapClaims{
			ConfirmedLocation:    map[string]interface{}{"role": "hr_manager"},
			SelfReportedLocation: map[string]interface{}{"role": "administrator"},
			LegacyLocation:       map[string]interface{}{"role": "employee"},
		})
		require.Equal(t, models.HRManagerRole, identity.Role)
	})

	t.Run(`fields resolve independently`, func(t *testing.T) {
		identity := Normalize(jwt.MapClaims{
			ConfirmedLocation:    map[string]interface{}{"role": "supervisor"},
			SelfReportedLocation: map[string]interface{}{"requested_role": "hr_manager", "role": "administrator"},
			LegacyLocation:       map[string]interface{}{"is_approved": true, "requested_role": "employee"},
		})
		require.Equal(t, models.SupervisorRole, identity.Role)
		require.Equal(t, models.HRManagerRole, identity.RequestedRole)
		require.NotNil(t, identity.IsApproved)
		require.True(t, *identity.IsApproved)
	})

	t.Run(`nil values are skipped`, func(t *testing.T) {
		identity := Normalize(jwt.MapClaims{
			ConfirmedLocation:    map[string]interface{}{"role": nil, "is_approved": nil},
			SelfReportedLocation: map[string]interface{}{"role": "employee", "is_approved": false},
		})
		require.Equal(t, models.EmployeeRole, identity.Role)
		require.True(t, identity.PendingApproval())
	})

	t.Run(`unknown role token means no role`, func(t *testing.T) {
		identity := Normalize(jwt.MapClaims{
			ConfirmedLocation:    map[string]interface{}{"role": "superuser"},
			SelfReportedLocation: map[string]interface{}{"role": "employee"},
		})
		require.Equal(t, models.UserRole(""), identity.Role)

		identity = Normalize(jwt.MapClaims{
			ConfirmedLocation: map[string]interface{}{"role": 42},
		})
		require.False(t, identity.HasRole())
	})

	t.Run(`role token is case insensitive`, func(t *testing.T) {
		identity := Normalize(jwt.MapClaims{
			ConfirmedLocation: map[string]interface{}{"role": " Finance_Manager "},
		})
		require.Equal(t, models.FinanceManagerRole, identity.Role)
	})

	t.Run(`approval values`, func(t *testing.T) {
		cases := []struct {
			value    any
			expected bool
		}{
			{true, true},
			{false, false},
			{"true", true},
			{"false", false},
			{"yes", false},
			{1.0, false},
		}
		for _, c := range cases {
			identity := Normalize(jwt.MapClaims{
				ConfirmedLocation: map[string]interface{}{"is_approved": c.value},
			})
			require.NotNil(t, identity.IsApproved, c.value)
			require.Equal(t, c.expected, *identity.IsApproved, c.value)
		}
	})

	t.Run(`location of wrong shape is ignored`, func(t *testing.T) {
		identity := Normalize(jwt.MapClaims{
			ConfirmedLocation:    "administrator",
			SelfReportedLocation: map[string]interface{}{"role": "employee"},
		})
		require.Equal(t, models.EmployeeRole, identity.Role)
	})

	t.Run(`deterministic`, func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub":                "user-7",
			ConfirmedLocation:    map[string]interface{}{"is_approved": false},
			SelfReportedLocation: map[string]interface{}{"role": "employee", "requested_role": "supervisor"},
		}
		first := Normalize(claims)
		for i := 0; i < 10; i++ {
			require.Equal(t, first, Normalize(claims))
		}
	})
}
