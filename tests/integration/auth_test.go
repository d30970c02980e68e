package integration

import (
	"net/http"
	"testing"

	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/tests/integration/setup"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	env := setup.NewTestEnv(t, true)

	resp, err := env.App.Test(setup.CreateJSONRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	env := setup.NewTestEnv(t, true)

	username := "user" + setup.GenerateRandomString(6)

	t.Run("register returns a usable token", func(t *testing.T) {
		token := env.RegisterUser(t, username)

		status, resp := env.Do(t, setup.CreateAuthRequest(http.MethodGet, "/api/users/me", nil, token))
		require.Equal(t, http.StatusOK, status)

		data := setup.GetDataAsMap(t, resp)
		require.Equal(t, username, data["username"])
		require.Equal(t, username+"@example.com", data["email"])
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		body := setup.MustJSON(t, map[string]string{
			"username": username,
			"email":    "other" + setup.GenerateRandomString(4) + "@example.com",
			"password": "secret123",
		})

		status, resp := env.Do(t, setup.CreateJSONRequest(http.MethodPost, "/api/auth/register", body))
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, constant.ERR_CONFLICT_ERROR, resp.Error.Code)
		require.Equal(t, "username", resp.Error.Param)
	})

	t.Run("register validates input", func(t *testing.T) {
		body := setup.MustJSON(t, map[string]string{
			"username": "abc",
			"email":    "abc@example.com",
			"password": "secret123",
		})

		status, resp := env.Do(t, setup.CreateJSONRequest(http.MethodPost, "/api/auth/register", body))
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, constant.ERR_VALIDATION_CODE, resp.Error.Code)
		require.Equal(t, "username", resp.Error.Param)
	})

	t.Run("malformed body", func(t *testing.T) {
		status, resp := env.Do(t, setup.CreateJSONRequest(http.MethodPost, "/api/auth/register", []byte(`{"username":`)))
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE, resp.Error.Code)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		body := setup.MustJSON(t, map[string]string{"username": username, "password": "wrong123"})

		status, resp := env.Do(t, setup.CreateJSONRequest(http.MethodPost, "/api/auth/login", body))
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "password", resp.Error.Param)
	})

	t.Run("login then logout revokes the token", func(t *testing.T) {
		body := setup.MustJSON(t, map[string]string{"username": username, "password": "secret123"})

		status, resp := env.Do(t, setup.CreateJSONRequest(http.MethodPost, "/api/auth/login", body))
		require.Equal(t, http.StatusOK, status)

		token, ok := setup.GetDataAsMap(t, resp)["accessToken"].(string)
		require.True(t, ok)

		status, _ = env.Do(t, setup.CreateAuthRequest(http.MethodPost, "/api/users/logout", nil, token))
		require.Equal(t, http.StatusOK, status)

		status, resp = env.Do(t, setup.CreateAuthRequest(http.MethodGet, "/api/users/me", nil, token))
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, constant.ERR_UNATHORIZED_ERROR, resp.Error.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		status, resp := env.Do(t, setup.CreateJSONRequest(http.MethodPost, "/api/posts", []byte(`{"title":"x"}`)))
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, constant.ERR_UNATHORIZED_ERROR, resp.Error.Code)
	})
}
