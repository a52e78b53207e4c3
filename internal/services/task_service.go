package services

import (
	"sync"

	"go-task-manager/backend/internal/taskstore"
)

// TaskService はストア操作の直列化レイヤーです。
// ストア自体はロックを持たないため、HTTPハンドラーが並行に動く環境では
// ここで「同時に実行される操作は常に1つだけ」というホスト保証を実現します。
// 全操作が1つのミューテックスを通るので、採番の read-then-increment も
// フィールドの read-modify-write も割り込まれることはありません。
type TaskService struct {
	mu    sync.Mutex
	store *taskstore.Store
}

// NewTaskService は新しいTaskServiceを作成します。
func NewTaskService(store *taskstore.Store) *TaskService {
	return &TaskService{store: store}
}

// CreateTask は新しいタスクを作成し、割り当てたIDを返します。
func (s *TaskService) CreateTask(title, description string, isImportant *bool) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Create(title, description, isImportant)
}

// GetTask は指定IDのタスクを取得します。
func (s *TaskService) GetTask(id uint64) (taskstore.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(id)
}

// ListTasks は全タスクをID昇順で返します。
func (s *TaskService) ListTasks() []taskstore.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

// UpdateTask は指定されたフィールドだけを更新します。
func (s *TaskService) UpdateTask(id uint64, u taskstore.TaskUpdate) (taskstore.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Update(id, u)
}

// DeleteTask はタスクを削除します。
func (s *TaskService) DeleteTask(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(id)
}

// MarkDone はタスクを完了にします。
func (s *TaskService) MarkDone(id uint64) (taskstore.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.MarkDone(id)
}

// ResetStatus はタスクを未完了に戻します。
func (s *TaskService) ResetStatus(id uint64) (taskstore.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ResetStatus(id)
}

// MarkImportant はタスクを重要にします。
func (s *TaskService) MarkImportant(id uint64) (taskstore.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.MarkImportant(id)
}

// ToggleImportance は重要フラグを反転します。
func (s *TaskService) ToggleImportance(id uint64) (taskstore.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ToggleImportance(id)
}

// ClearCompleted は完了済みタスクをすべて削除します。
func (s *TaskService) ClearCompleted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ClearCompleted()
}

// CountTasks は現在のタスク数を返します。
func (s *TaskService) CountTasks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Count()
}

// FindByStatus は完了状態でフィルタします。
func (s *TaskService) FindByStatus(done bool) []taskstore.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.FindByStatus(done)
}

// FindByImportance は重要フラグでフィルタします。
func (s *TaskService) FindByImportance(important bool) []taskstore.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.FindByImportance(important)
}

// FindByTitle はタイトル完全一致でフィルタします。
func (s *TaskService) FindByTitle(title string) []taskstore.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.FindByTitle(title)
}

// FindByDescription は説明完全一致でフィルタします。
func (s *TaskService) FindByDescription(description string) []taskstore.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.FindByDescription(description)
}

// CreatedAfter は指定時刻より後に作成されたタスクを返します。
func (s *TaskService) CreatedAfter(timestamp uint64) []taskstore.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.CreatedAfter(timestamp)
}

// UpdatedAfter は指定時刻より後に更新されたタスクを返します。
func (s *TaskService) UpdatedAfter(timestamp uint64) []taskstore.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.UpdatedAfter(timestamp)
}

// SnapshotState はスナップショット機構向けに全状態を取り出します。
func (s *TaskService) SnapshotState() taskstore.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

// RestoreState は保存済みの状態からストアを再構築します。
func (s *TaskService) RestoreState(state taskstore.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Restore(state)
}
