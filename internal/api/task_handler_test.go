package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmorrow/taskhub/internal/api"
)

// createTask drives the real task creation endpoint.
func (a *testAPI) createTask(t *testing.T, token, description string, completed bool) api.TaskResponse {
	t.Helper()

	body := fmt.Sprintf(`{"description":%q,"completed":%t}`, description, completed)
	rec := a.do(t, http.MethodPost, "/tasks", token, strings.NewReader(body), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp api.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateTask(t *testing.T) {
	t.Run("owner comes from the authenticated user", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")

		task := a.createTask(t, owner.Token, "Buy groceries", false)

		assert.Equal(t, "Buy groceries", task.Description)
		assert.False(t, task.Completed)
		assert.Equal(t, owner.User.ID, task.OwnerID)
	})

	t.Run("owner field in the body is ignored", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")

		body := fmt.Sprintf(`{"description":"Sneaky","owner_id":%q}`, uuid.NewString())
		rec := a.do(t, http.MethodPost, "/tasks", owner.Token, strings.NewReader(body), "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, owner.User.ID, resp.OwnerID)
	})

	t.Run("empty description is rejected", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")

		rec := a.do(t, http.MethodPost, "/tasks", owner.Token, strings.NewReader(`{"description":""}`), "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = a.do(t, http.MethodPost, "/tasks", owner.Token, strings.NewReader(`{"description":"   "}`), "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "whitespace-only description is empty after trimming")
	})
}

func TestListTasks(t *testing.T) {
	setup := func(t *testing.T) (*testAPI, api.AuthResponse) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")
		a.createTask(t, owner.Token, "alpha", false)
		a.createTask(t, owner.Token, "bravo", true)
		a.createTask(t, owner.Token, "charlie", false)
		return a, owner
	}

	listTasks := func(t *testing.T, a *testAPI, token, query string) []api.TaskResponse {
		t.Helper()
		rec := a.do(t, http.MethodGet, "/tasks"+query, token, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp []api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	t.Run("default order is creation time ascending", func(t *testing.T) {
		a, owner := setup(t)

		tasks := listTasks(t, a, owner.Token, "")
		require.Len(t, tasks, 3)
		assert.Equal(t, "alpha", tasks[0].Description)
		assert.Equal(t, "bravo", tasks[1].Description)
		assert.Equal(t, "charlie", tasks[2].Description)
	})

	t.Run("completed filter", func(t *testing.T) {
		a, owner := setup(t)

		tasks := listTasks(t, a, owner.Token, "?completed=true")
		require.Len(t, tasks, 1)
		assert.Equal(t, "bravo", tasks[0].Description)

		tasks = listTasks(t, a, owner.Token, "?completed=false")
		assert.Len(t, tasks, 2)
	})

	t.Run("invalid completed value is a client error", func(t *testing.T) {
		a, owner := setup(t)

		rec := a.do(t, http.MethodGet, "/tasks?completed=banana", owner.Token, nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sortBy descending", func(t *testing.T) {
		a, owner := setup(t)

		tasks := listTasks(t, a, owner.Token, "?sortBy=description:desc")
		require.Len(t, tasks, 3)
		assert.Equal(t, "charlie", tasks[0].Description)
		assert.Equal(t, "alpha", tasks[2].Description)
	})

	t.Run("unknown sort key falls back to creation order", func(t *testing.T) {
		a, owner := setup(t)

		tasks := listTasks(t, a, owner.Token, "?sortBy=nonsense:asc")
		require.Len(t, tasks, 3)
		assert.Equal(t, "alpha", tasks[0].Description)
	})

	t.Run("pagination", func(t *testing.T) {
		a, owner := setup(t)

		tasks := listTasks(t, a, owner.Token, "?limit=2")
		assert.Len(t, tasks, 2)

		tasks = listTasks(t, a, owner.Token, "?limit=2&skip=2")
		require.Len(t, tasks, 1)
		assert.Equal(t, "charlie", tasks[0].Description)

		// Malformed pagination is ignored rather than rejected.
		tasks = listTasks(t, a, owner.Token, "?limit=banana&skip=-3")
		assert.Len(t, tasks, 3)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Dave", "dave@example.com", "longenough")

		rec := a.do(t, http.MethodGet, "/tasks", owner.Token, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("only the caller's tasks are listed", func(t *testing.T) {
		a, _ := setup(t)
		other := a.signup(t, "Dave", "dave@example.com", "longenough")
		a.createTask(t, other.Token, "daves task", false)

		tasks := listTasks(t, a, other.Token, "")
		require.Len(t, tasks, 1)
		assert.Equal(t, "daves task", tasks[0].Description)
	})
}

func TestTaskOwnerScoping(t *testing.T) {
	a := newTestAPI(t)
	owner := a.signup(t, "Carol", "carol@example.com", "longenough")
	intruder := a.signup(t, "Dave", "dave@example.com", "longenough")
	task := a.createTask(t, owner.Token, "private", false)

	attempts := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"get", http.MethodGet, "/tasks/" + task.ID.String(), ""},
		{"update", http.MethodPatch, "/tasks/" + task.ID.String(), `{"completed":true}`},
		{"delete", http.MethodDelete, "/tasks/" + task.ID.String(), ""},
		{"clear image", http.MethodDelete, "/tasks/" + task.ID.String() + "/image", ""},
	}

	for _, tt := range attempts {
		t.Run(tt.name+" another owner's task is 404", func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			rec := a.do(t, tt.method, tt.path, intruder.Token, body, "")
			assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
		})
	}

	// The owner still sees the task untouched.
	rec := a.do(t, http.MethodGet, "/tasks/"+task.ID.String(), owner.Token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Completed)
}

func TestGetTask(t *testing.T) {
	t.Run("returns the owned task", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")
		task := a.createTask(t, owner.Token, "mine", false)

		rec := a.do(t, http.MethodGet, "/tasks/"+task.ID.String(), owner.Token, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, task.ID, resp.ID)
	})

	t.Run("missing task is 404", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")

		rec := a.do(t, http.MethodGet, "/tasks/"+uuid.NewString(), owner.Token, nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is 404", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")

		rec := a.do(t, http.MethodGet, "/tasks/not-a-uuid", owner.Token, nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("updates allow-listed fields", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")
		task := a.createTask(t, owner.Token, "before", false)

		body := `{"description":"after","completed":true}`
		rec := a.do(t, http.MethodPatch, "/tasks/"+task.ID.String(), owner.Token, strings.NewReader(body), "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "after", resp.Description)
		assert.True(t, resp.Completed)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")
		task := a.createTask(t, owner.Token, "before", false)

		body := `{"description":"after","priority":3}`
		rec := a.do(t, http.MethodPatch, "/tasks/"+task.ID.String(), owner.Token, strings.NewReader(body), "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid updates")

		// The rejected update must not apply partially.
		rec = a.do(t, http.MethodGet, "/tasks/"+task.ID.String(), owner.Token, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "before", resp.Description)
	})

	t.Run("emptying the description is rejected", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")
		task := a.createTask(t, owner.Token, "keep me", false)

		body := `{"description":"  "}`
		rec := a.do(t, http.MethodPatch, "/tasks/"+task.ID.String(), owner.Token, strings.NewReader(body), "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteTask(t *testing.T) {
	a := newTestAPI(t)
	owner := a.signup(t, "Carol", "carol@example.com", "longenough")
	task := a.createTask(t, owner.Token, "done with this", false)

	rec := a.do(t, http.MethodDelete, "/tasks/"+task.ID.String(), owner.Token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// The deleted task comes back in the response.
	var resp api.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, task.ID, resp.ID)

	rec = a.do(t, http.MethodGet, "/tasks/"+task.ID.String(), owner.Token, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskImage(t *testing.T) {
	t.Run("upload then public fetch", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")
		task := a.createTask(t, owner.Token, "with picture", false)

		body, contentType := pngUpload(t, "image", "pic.png")
		rec := a.do(t, http.MethodPost, "/tasks/"+task.ID.String()+"/image", owner.Token, body, contentType)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		// No auth header: task images are public.
		rec = a.do(t, http.MethodGet, "/tasks/"+task.ID.String()+"/image", "", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	})

	t.Run("upload to another owner's task is 404", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")
		intruder := a.signup(t, "Dave", "dave@example.com", "longenough")
		task := a.createTask(t, owner.Token, "with picture", false)

		body, contentType := pngUpload(t, "image", "pic.png")
		rec := a.do(t, http.MethodPost, "/tasks/"+task.ID.String()+"/image", intruder.Token, body, contentType)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("fetch without image is 404", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")
		task := a.createTask(t, owner.Token, "no picture", false)

		rec := a.do(t, http.MethodGet, "/tasks/"+task.ID.String()+"/image", "", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete image", func(t *testing.T) {
		a := newTestAPI(t)
		owner := a.signup(t, "Carol", "carol@example.com", "longenough")
		task := a.createTask(t, owner.Token, "with picture", false)

		body, contentType := pngUpload(t, "image", "pic.png")
		rec := a.do(t, http.MethodPost, "/tasks/"+task.ID.String()+"/image", owner.Token, body, contentType)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = a.do(t, http.MethodDelete, "/tasks/"+task.ID.String()+"/image", owner.Token, nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = a.do(t, http.MethodGet, "/tasks/"+task.ID.String()+"/image", "", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
