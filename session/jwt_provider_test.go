package session

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/contracts"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// runProvider gọi GetSession bên trong một request fiber và trả về kết quả
func runProvider(t *testing.T, headers map[string]string) (*contracts.Session, error) {
	t.Helper()
	provider := NewJWTProvider(testSecret)

	var gotSession *contracts.Session
	var gotErr error
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		gotSession, gotErr = provider.GetSession(c)
		return c.SendStatus(204)
	})

	r := httptest.NewRequest("GET", "/", nil)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	_, err := app.Test(r)
	require.NoError(t, err)
	return gotSession, gotErr
}

func TestJWTProvider_NoToken(t *testing.T) {
	s, err := runProvider(t, nil)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestJWTProvider_BearerToken(t *testing.T) {
	token, err := utils.GenerateToken("abcDEF123456", "sp@example.com", core.RoleServiceProvider, testSecret, time.Hour)
	require.NoError(t, err)

	s, err := runProvider(t, map[string]string{"Authorization": "Bearer " + token})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "abcDEF123456", s.UserID)
	assert.Equal(t, "service-provider", s.Role)
}

func TestJWTProvider_Cookie(t *testing.T) {
	token, err := utils.GenerateToken("abcDEF123456", "c@example.com", core.RoleClient, testSecret, time.Hour)
	require.NoError(t, err)

	s, err := runProvider(t, map[string]string{"Cookie": "token=" + token})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "client", s.Role)
}

func TestJWTProvider_InvalidToken(t *testing.T) {
	token, err := utils.GenerateToken("abcDEF123456", "c@example.com", core.RoleClient, "other-secret", time.Hour)
	require.NoError(t, err)

	s, err := runProvider(t, map[string]string{"Authorization": "Bearer " + token})
	assert.Error(t, err)
	assert.Nil(t, s)
}
