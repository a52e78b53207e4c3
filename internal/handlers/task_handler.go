package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-task-manager/backend/internal/services"
	"go-task-manager/backend/internal/taskstore"
)

// TaskHandler はタスク関連のHTTPハンドラーを管理します。
// ストアのエラー種別をHTTPステータスに写すのはこの層の責務です。
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler は新しいTaskHandlerを作成します。
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// createTaskRequest は作成リクエストのボディです。
// 非空バリデーションはストア側で行うため、bindingタグは付けません
// (エラー種別をInvalidInputとして一元的に返すため)。
type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsImportant *bool  `json:"is_important"`
}

// CreateTaskHandler は新しいタスクを作成します。
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	id, err := h.taskService.CreateTask(req.Title, req.Description, req.IsImportant)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetTaskHandler は指定IDのタスクを取得します。
func (h *TaskHandler) GetTaskHandler(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// ListTasksHandler はタスクの一覧を返します。クエリパラメータで
// フィルタを1つだけ指定できます:
//
//	done=true|false         完了状態の完全一致
//	important=true|false    重要フラグの完全一致
//	title=...               タイトルの完全一致
//	description=...         説明の完全一致
//	created_after=<ns>      指定時刻より後に作成
//	updated_after=<ns>      指定時刻より後に更新
//
// フィルタなしなら全件。結果はID昇順で、0件でも200と空配列を返します。
func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	type filter struct {
		name  string
		value string
	}
	var filters []filter
	for _, name := range []string{"done", "important", "title", "description", "created_after", "updated_after"} {
		if value, ok := c.GetQuery(name); ok {
			filters = append(filters, filter{name: name, value: value})
		}
	}
	if len(filters) > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At most one filter may be specified"})
		return
	}

	if len(filters) == 0 {
		c.JSON(http.StatusOK, h.taskService.ListTasks())
		return
	}

	f := filters[0]
	var tasks []taskstore.Task
	switch f.name {
	case "done", "important":
		value, err := strconv.ParseBool(f.value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid boolean filter value", "details": err.Error()})
			return
		}
		if f.name == "done" {
			tasks = h.taskService.FindByStatus(value)
		} else {
			tasks = h.taskService.FindByImportance(value)
		}
	case "title":
		tasks = h.taskService.FindByTitle(f.value)
	case "description":
		tasks = h.taskService.FindByDescription(f.value)
	case "created_after", "updated_after":
		timestamp, err := strconv.ParseUint(f.value, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp filter value", "details": err.Error()})
			return
		}
		if f.name == "created_after" {
			tasks = h.taskService.CreatedAfter(timestamp)
		} else {
			tasks = h.taskService.UpdatedAfter(timestamp)
		}
	}
	c.JSON(http.StatusOK, tasks)
}

// UpdateTaskHandler はタスクを部分更新します。
// JSONに現れないフィールドは変更されません。
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	var update taskstore.TaskUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(id, update)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTaskHandler はタスクを削除します。
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkDoneHandler はタスクを完了にします。
func (h *TaskHandler) MarkDoneHandler(c *gin.Context) {
	h.mutateTask(c, h.taskService.MarkDone)
}

// ResetStatusHandler はタスクを未完了に戻します。
func (h *TaskHandler) ResetStatusHandler(c *gin.Context) {
	h.mutateTask(c, h.taskService.ResetStatus)
}

// MarkImportantHandler はタスクを重要にします。
func (h *TaskHandler) MarkImportantHandler(c *gin.Context) {
	h.mutateTask(c, h.taskService.MarkImportant)
}

// ToggleImportanceHandler は重要フラグを反転します。
func (h *TaskHandler) ToggleImportanceHandler(c *gin.Context) {
	h.mutateTask(c, h.taskService.ToggleImportance)
}

// ClearCompletedHandler は完了済みタスクをすべて削除します。失敗しません。
func (h *TaskHandler) ClearCompletedHandler(c *gin.Context) {
	h.taskService.ClearCompleted()
	c.Status(http.StatusNoContent)
}

// CountTasksHandler は現在のタスク数を返します。
func (h *TaskHandler) CountTasksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.taskService.CountTasks()})
}

// mutateTask は単一フィールド更新系ハンドラーの共通部分です。
func (h *TaskHandler) mutateTask(c *gin.Context, op func(uint64) (taskstore.Task, error)) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := op(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// parseTaskID は:idパラメータをuint64として読み取ります。
// 失敗時は400を書き込んでfalseを返します。
func parseTaskID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}

// respondStoreError はストアのエラー種別をHTTPステータスに写します。
// NotFound → 404, InvalidInput → 400, DuplicateTask → 409。
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, taskstore.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, taskstore.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, taskstore.ErrDuplicateTask):
		c.JSON(http.StatusConflict, gin.H{"error": "Duplicate task"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
