package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-task-manager/backend/internal/taskstore"
	"go-task-manager/backend/testutil"
)

func TestCreateTask_Success(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	payload := map[string]interface{}{
		"title":       "Test Task",
		"description": "A task created over HTTP",
	}
	jsonValue, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBuffer(jsonValue))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, "Expected HTTP Status Code 201 Created")

	var created struct {
		ID uint64 `json:"id"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &created)
	assert.NoError(t, err, "Response should be a valid JSON object with the new id")
	assert.Equal(t, uint64(0), created.ID, "First task gets id 0")
}

func TestCreateTask_EmptyFieldsRejected(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	for _, payload := range []string{
		`{"title": "", "description": "x"}`,
		`{"title": "x", "description": ""}`,
		`{"title": "", "description": ""}`,
		`{}`,
	} {
		req, _ := http.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code, "payload %s must be rejected", payload)
		require.Contains(t, w.Body.String(), "Invalid input")
	}

	// 失敗したCreateはIDを消費しない
	id := testutil.CreateTestTask(t, router, "valid", "valid", false)
	assert.Equal(t, uint64(0), id)
}

func TestGetTask(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	id := testutil.CreateTestTask(t, router, "Buy milk", "2%", false)

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var task taskstore.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, id, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2%", task.Description)
	assert.False(t, task.Done)
	assert.NotZero(t, task.CreatedAt)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestGetTask_NotFound(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/tasks/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Task not found")
}

func TestGetTask_InvalidIDFormat(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/tasks/not-a-number", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid ID format")
}

func TestListTasks_AndFilters(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	milk := testutil.CreateTestTask(t, router, "Buy milk", "2%", false)
	rent := testutil.CreateTestTask(t, router, "Pay rent", "rent", true)

	// milkを完了にする
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/tasks/%d/done", milk), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	listTasks := func(query string) []taskstore.Task {
		req, _ := http.NewRequest(http.MethodGet, "/api/tasks"+query, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "query %q: %s", query, w.Body.String())
		var tasks []taskstore.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
		return tasks
	}

	all := listTasks("")
	require.Len(t, all, 2)
	assert.Equal(t, milk, all[0].ID, "results come back sorted ascending by id")
	assert.Equal(t, rent, all[1].ID)

	completed := listTasks("?done=true")
	require.Len(t, completed, 1)
	assert.Equal(t, milk, completed[0].ID)

	incomplete := listTasks("?done=false")
	require.Len(t, incomplete, 1)
	assert.Equal(t, rent, incomplete[0].ID)

	important := listTasks("?important=true")
	require.Len(t, important, 1)
	assert.Equal(t, rent, important[0].ID)

	byTitle := listTasks("?title=Buy+milk")
	require.Len(t, byTitle, 1)
	assert.Equal(t, milk, byTitle[0].ID)

	byDescription := listTasks("?description=rent")
	require.Len(t, byDescription, 1)
	assert.Equal(t, rent, byDescription[0].ID)

	// フェイククロックは1始まりなので0より後には全件が入る
	createdAfter := listTasks("?created_after=0")
	assert.Len(t, createdAfter, 2)

	// 完了操作で進んだUpdatedAtを持つのはmilkだけ
	updatedAfter := listTasks(fmt.Sprintf("?updated_after=%d", all[1].UpdatedAt))
	require.Len(t, updatedAfter, 1)
	assert.Equal(t, milk, updatedAfter[0].ID)

	// 一致なしは200と空配列
	assert.Empty(t, listTasks("?title=nothing+matches"))
}

func TestListTasks_FilterValidation(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	for _, query := range []string{
		"?done=true&important=true", // フィルタは1つまで
		"?done=banana",
		"?created_after=yesterday",
		"?updated_after=-1",
	} {
		req, _ := http.NewRequest(http.MethodGet, "/api/tasks"+query, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q must be rejected", query)
	}
}

func TestUpdateTask_PartialFields(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	id := testutil.CreateTestTask(t, router, "original", "desc", false)

	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), strings.NewReader(`{"title": "renamed", "done": true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var updated taskstore.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "desc", updated.Description, "omitted fields stay untouched")
	assert.True(t, updated.Done)
	assert.Greater(t, updated.UpdatedAt, updated.CreatedAt)
}

func TestUpdateTask_EmptyBodyStillTouchesUpdatedAt(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	id := testutil.CreateTestTask(t, router, "task", "desc", false)

	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var updated taskstore.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Greater(t, updated.UpdatedAt, updated.CreatedAt)
}

func TestUpdateTask_Errors(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	id := testutil.CreateTestTask(t, router, "task", "desc", false)

	t.Run("empty title rejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), strings.NewReader(`{"title": ""}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid input")
	})

	t.Run("missing task", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, "/api/tasks/999", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteTask(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	id := testutil.CreateTestTask(t, router, "task", "desc", false)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	// 削除済みIDへのGetは404
	req, _ = http.NewRequest(http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	// 2度目の削除も404（silent fallbackしない）
	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusMutatorEndpoints(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	id := testutil.CreateTestTask(t, router, "task", "desc", false)

	mutate := func(action string, wantStatus int) taskstore.Task {
		req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/tasks/%d/%s", id, action), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, wantStatus, w.Code, "action %s: %s", action, w.Body.String())
		var task taskstore.Task
		if wantStatus == http.StatusOK {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
		}
		return task
	}

	task := mutate("done", http.StatusOK)
	assert.True(t, task.Done)

	task = mutate("reset", http.StatusOK)
	assert.False(t, task.Done)

	task = mutate("important", http.StatusOK)
	assert.True(t, task.IsImportant)

	task = mutate("toggle-important", http.StatusOK)
	assert.False(t, task.IsImportant)
	task = mutate("toggle-important", http.StatusOK)
	assert.True(t, task.IsImportant, "double toggle returns to the prior value")

	// 存在しないIDは一律404
	for _, action := range []string{"done", "reset", "important", "toggle-important"} {
		req, _ := http.NewRequest(http.MethodPost, "/api/tasks/777/"+action, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestClearCompletedAndCount(t *testing.T) {
	router, _, _ := testutil.SetupTestRouter(t)

	done := testutil.CreateTestTask(t, router, "done", "desc", false)
	_ = testutil.CreateTestTask(t, router, "open", "desc", false)

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/tasks/%d/done", done), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	count := func() uint64 {
		req, _ := http.NewRequest(http.MethodGet, "/api/count", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var res struct {
			Count uint64 `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		return res.Count
	}
	require.Equal(t, uint64(2), count())

	req, _ = http.NewRequest(http.MethodPost, "/api/clear-completed", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, uint64(1), count())

	// 完了タスクが無くても失敗しない
	req, _ = http.NewRequest(http.MethodPost, "/api/clear-completed", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
}
