package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aharoni/caseboard/internal/model"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", 5*time.Second, zerolog.Nop())
}

func TestListTasks(t *testing.T) {
	var gotAuth string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/tasks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "t1", "description": "Call the family", "due_date": "2026-09-01",
			 "status": "NOT_STARTED", "type_id": "type-1", "assignee_id": "s1",
			 "child_id": "c1"},
			{"id": "t2", "description": "Match review", "due_date": "2026-09-02",
			 "status": "IN_PROGRESS", "type_id": "type-2", "assignee_id": "s2",
			 "tutee_match_info": {"tutor_name": "Dana", "tutee_name": "Yoav",
			  "phone": "050-1234567", "eligible": true}}
		]`))
	}))

	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Bearer test-token", gotAuth)

	assert.Equal(t, "t1", tasks[0].ID)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), tasks[0].DueDate)
	require.NotNil(t, tasks[0].ChildID)
	assert.Equal(t, "c1", *tasks[0].ChildID)

	require.NotNil(t, tasks[1].TuteeMatchInfo)
	assert.Equal(t, "Dana", tasks[1].TuteeMatchInfo.TutorName)
	assert.True(t, tasks[1].TuteeMatchInfo.Eligible)
}

func TestListTasks_BadDueDate(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "t1", "due_date": "not a date"}]`))
	}))

	_, err := c.ListTasks(context.Background())
	assert.Error(t, err)
}

func TestRetryOn429(t *testing.T) {
	attempts := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[]`))
	}))

	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Equal(t, 2, attempts)
}

func TestServerMessageSurfaced(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "task was completed by someone else"}`))
	}))

	err := c.UpdateTaskStatus(context.Background(), "t1", model.StatusCompleted)
	require.Error(t, err)
	assert.Equal(t, "task was completed by someone else", ServerMessage(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}

func TestUnauthorizedIsAuthError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.GetSession(context.Background())
	assert.True(t, IsAuthError(err))
}

func TestUpdateTaskStatus_Payload(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPut, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := c.UpdateTaskStatus(context.Background(), "t1", model.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, "/tasks/t1/status", gotPath)
	assert.Equal(t, map[string]string{"status": model.StatusInProgress}, gotBody)
}

func TestDeleteTask_ReasonBody(t *testing.T) {
	bodies := make([]string, 0, 2)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Reason string `json:"reason"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body.Reason)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.DeleteTask(context.Background(), "t1", ""))
	require.NoError(t, c.DeleteTask(context.Background(), "t2", "Incomplete application"))

	require.Len(t, bodies, 2)
	assert.Empty(t, bodies[0])
	assert.Equal(t, "Incomplete application", bodies[1])
}

func TestGetSession(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/session", r.URL.Path)
		w.Write([]byte(`{"username": "dana", "is_admin": true,
			"permissions": [{"resource": "tasks", "action": "manage"}]}`))
	}))

	session, err := c.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dana", session.Username)
	assert.True(t, session.Admin)
	assert.False(t, session.Guest)
	assert.True(t, session.Has("tasks", "manage"))
	assert.False(t, session.Has("tasks", "delete"))
}
