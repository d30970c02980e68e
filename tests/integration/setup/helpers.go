package setup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TruncateAllTables empties every table, children first.
func TruncateAllTables(t *testing.T, db *pgxpool.Pool, ctx context.Context) {
	tables := []string{"reactions", "posts", "users"}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

func CreateJSONRequest(method, url string, jsonBody []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func CreateAuthRequest(method, url string, jsonBody []byte, token string) *http.Request {
	req := CreateJSONRequest(method, url, jsonBody)
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	return req
}

func MustJSON(t *testing.T, value interface{}) []byte {
	body, err := sonic.Marshal(value)
	require.NoError(t, err)
	return body
}

// APIResponse covers both success shapes ({"status":"OK"} and {"data":...})
// and the error envelope.
type APIResponse struct {
	Status string         `json:"status,omitempty"`
	Detail string         `json:"detail,omitempty"`
	Data   interface{}    `json:"data,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

func ParseAPIResponse(t *testing.T, resp *http.Response) APIResponse {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NotEmpty(t, body, "response body should not be empty")

	var apiResp APIResponse
	err = sonic.Unmarshal(body, &apiResp)
	require.NoError(t, err, "failed to parse JSON response: %s", string(body))

	return apiResp
}

func GetDataAsMap(t *testing.T, resp APIResponse) map[string]interface{} {
	require.NotNil(t, resp.Data, "response should have data field")
	dataMap, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data field should be an object")
	return dataMap
}

func GetDataAsArray(t *testing.T, resp APIResponse) []interface{} {
	require.NotNil(t, resp.Data, "response should have data field")
	dataArray, ok := resp.Data.([]interface{})
	require.True(t, ok, "data field should be an array")
	return dataArray
}

// Do sends req through the app and decodes the envelope.
func (app *TestApp) Do(t *testing.T, req *http.Request) (int, APIResponse) {
	resp, err := app.App.Test(req, -1)
	require.NoError(t, err, "request should succeed")
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, ParseAPIResponse(t, resp)
}

// RegisterUser creates a fresh account and returns its access token.
func (app *TestApp) RegisterUser(t *testing.T, username string) string {
	body := MustJSON(t, map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})

	status, resp := app.Do(t, CreateJSONRequest(http.MethodPost, "/api/auth/register", body))
	require.Equal(t, http.StatusCreated, status, "register should succeed: %+v", resp.Error)

	data := GetDataAsMap(t, resp)
	accessToken, ok := data["accessToken"].(string)
	require.True(t, ok, "accessToken should be a string")
	require.NotEmpty(t, accessToken)

	return accessToken
}

// CreatePost creates a post as token's owner and returns its id.
func (app *TestApp) CreatePost(t *testing.T, token string, title string) string {
	body := MustJSON(t, map[string]string{"title": title})

	status, resp := app.Do(t, CreateAuthRequest(http.MethodPost, "/api/posts", body, token))
	require.Equal(t, http.StatusCreated, status, "create post should succeed: %+v", resp.Error)

	data := GetDataAsMap(t, resp)
	postId, ok := data["id"].(string)
	require.True(t, ok, "id should be a string")

	return postId
}

// GenerateRandomString returns lowercase letters and digits.
func GenerateRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, length)
	for i := range b {
		// #nosec G404 -- test data only
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
