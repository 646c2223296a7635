package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/storefront/pkg/model"
)

func createTestUser(t *testing.T, api *testAPI, username, email string) model.User {
	t.Helper()

	rec := api.do(t, http.MethodPost, "/users", UserCreateRequest{
		Username: username,
		Email:    email,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[model.User](t, rec)
}

func TestCreateUser(t *testing.T) {
	api := newTestAPI(t)

	user := createTestUser(t, api, "alice", "alice@example.com")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestCreateUserInvalid(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		name string
		body UserCreateRequest
	}{
		{"missing username", UserCreateRequest{Email: "a@example.com"}},
		{"missing email", UserCreateRequest{Username: "alice"}},
		{"malformed email", UserCreateRequest{Username: "alice", Email: "not-an-email"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, "/users", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateUserMalformedBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/users", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUser(t *testing.T) {
	api := newTestAPI(t)
	user := createTestUser(t, api, "alice", "alice@example.com")

	rec := api.do(t, http.MethodGet, "/users/"+user.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[model.User](t, rec)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
}

func TestGetUserNotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/users/no-such-id", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "user with id no-such-id not found", body["error"])
}

func TestListUsers(t *testing.T) {
	api := newTestAPI(t)
	createTestUser(t, api, "alice", "alice@example.com")
	createTestUser(t, api, "bob", "bob@example.com")

	rec := api.do(t, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	users := decodeBody[[]model.User](t, rec)
	assert.Len(t, users, 2)
}

func TestListUsersFiltered(t *testing.T) {
	api := newTestAPI(t)
	createTestUser(t, api, "alice", "alice@example.com")
	createTestUser(t, api, "bob", "bob@example.com")

	rec := api.do(t, http.MethodGet, "/users?username=ALI", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	users := decodeBody[[]model.User](t, rec)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestListUsersEmpty(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestListUsersBadPagination(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{
		"/users?page=0",
		"/users?page=-1",
		"/users?page=abc",
		"/users?count=0",
		"/users?count=101",
	} {
		rec := api.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestUpdateUser(t *testing.T) {
	api := newTestAPI(t)
	user := createTestUser(t, api, "alice", "alice@example.com")

	username := "alice2"
	rec := api.do(t, http.MethodPut, "/users/"+user.ID, UserUpdateRequest{Username: &username})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decodeBody[model.User](t, rec)
	assert.Equal(t, "alice2", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestUpdateUserNotFound(t *testing.T) {
	api := newTestAPI(t)

	username := "x"
	rec := api.do(t, http.MethodPut, "/users/no-such-id", UserUpdateRequest{Username: &username})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	api := newTestAPI(t)
	user := createTestUser(t, api, "alice", "alice@example.com")

	rec := api.do(t, http.MethodDelete, "/users/"+user.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/users/"+user.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Deleting again is still a 204.
	rec = api.do(t, http.MethodDelete, "/users/"+user.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
