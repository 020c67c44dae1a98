package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/classtrack-dev/classtrack/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllUsers(t *testing.T) {
	h, store, _, _ := newTestHandler(t)
	createUser(t, store, "alice", "s3cret", domain.RoleTeacher, "")
	createUser(t, store, "bob", "s3cret", domain.RoleStudent, "")

	rec := doRequest(t, h, http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)

	for _, user := range users {
		assert.NotContains(t, user, "passwordHash")
		assert.NotContains(t, user, "password_hash")
	}
	assert.Equal(t, "alice", users[0]["username"])
	assert.Equal(t, "teacher", users[0]["role"])
}

func TestGetUser(t *testing.T) {
	h, store, _, _ := newTestHandler(t)
	alice := createUser(t, store, "alice", "s3cret", domain.RoleTeacher, "")

	t.Run("found", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/users/1", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, float64(alice.ID), body["id"])
		assert.Equal(t, "alice", body["username"])
	})

	t.Run("absent", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/users/42", "", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decodeBody(t, rec)["error"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/users/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouteNotFound(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/no-such-route", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeBody(t, rec)["error"])
}

func TestHealth(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server is running", decodeBody(t, rec)["msg"])
}
