package middleware

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionTest(t *testing.T) (*fiber.App, *miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	app := fiber.New()
	app.Use(SessionWithClient(SessionConfig{Secret: "test"}, rdb))
	return app, mr, rdb
}

func storeSession(t *testing.T, rdb *redis.Client, user SessionUser) string {
	t.Helper()
	sid := uuid.New().String()
	b, err := json.Marshal(map[string]interface{}{
		"user": map[string]interface{}{
			"user_id":  user.UserID,
			"fullname": user.Fullname,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
	require.NoError(t, err)
	require.NoError(t, rdb.Set(context.Background(), SessionRedisPrefix+sid, b, 0).Err())
	return sid
}

func TestSession_LoadsUserFromRedis(t *testing.T) {
	app, _, rdb := setupSessionTest(t)
	userID := uuid.New().String()
	sid := storeSession(t, rdb, SessionUser{UserID: userID, Role: "tenant"})

	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, err := GetUserID(c)
		require.NoError(t, err)
		return c.JSON(fiber.Map{"user_id": id.String(), "role": GetUserRole(c)})
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", SessionCookieName+"="+sid)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, userID, body["user_id"])
	assert.Equal(t, "tenant", body["role"])
}

func TestSession_SignedCookiePrefixStripped(t *testing.T) {
	app, _, rdb := setupSessionTest(t)
	sid := storeSession(t, rdb, SessionUser{UserID: uuid.New().String(), Role: "admin"})

	app.Get("/role", func(c *fiber.Ctx) error {
		return c.SendString(GetUserRole(c))
	})

	req := httptest.NewRequest("GET", "/role", nil)
	req.Header.Set("Cookie", SessionCookieName+"=s:"+sid+".signaturepart")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSession_NoCookieMeansNoUser(t *testing.T) {
	app, _, _ := setupSessionTest(t)

	app.Get("/guarded", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/guarded", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSession_PersistsAfterSetSessionUser(t *testing.T) {
	app, mr, _ := setupSessionTest(t)
	userID := uuid.New().String()

	app.Post("/login", func(c *fiber.Ctx) error {
		sid := RegenerateSessionID(c)
		SetSessionUser(c, SessionUser{UserID: userID, Role: "tenant"})
		return c.SendString(sid)
	})

	req := httptest.NewRequest("POST", "/login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	stored, err := mr.Get(keys[0])
	require.NoError(t, err)
	assert.Contains(t, stored, userID)

	// The session key expires with the cookie lifetime
	assert.Greater(t, mr.TTL(keys[0]).Seconds(), float64(0))
}

func TestSession_DestroyClearsUser(t *testing.T) {
	app, _, rdb := setupSessionTest(t)
	sid := storeSession(t, rdb, SessionUser{UserID: uuid.New().String(), Role: "tenant"})

	app.Post("/logout", func(c *fiber.Ctx) error {
		DestroySession(c)
		assert.Nil(t, GetUser(c))
		return c.SendString("ok")
	})

	req := httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set("Cookie", SessionCookieName+"="+sid)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
