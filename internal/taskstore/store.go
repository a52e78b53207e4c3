package taskstore

import "sort"

// Store はタスクレコードの唯一の保管場所です。
// 内部にロックは持ちません。ホスト環境が「同時に実行される操作は
// 常に1つだけ」と保証する前提で動作します（保証できないホストでは
// 呼び出し側がコンテナ全体をミューテックスで包んでください）。
type Store struct {
	tasks  map[uint64]*Task
	nextID uint64

	// now はホストから注入されるクロックです。単調非減少の
	// ナノ秒カウンタを返すことだけを期待します。
	now func() uint64
}

// New は空のStoreを作成します。nowはホスト環境のクロックです
// (本番では time.Now().UnixNano() を包んで渡します)。
func New(now func() uint64) *Store {
	return &Store{
		tasks: make(map[uint64]*Task),
		now:   now,
	}
}

// Create は新しいタスクを作成し、割り当てたIDを返します。
// タイトルまたは説明が空の場合は ErrInvalidInput を返します。
// バリデーションはID採番より先に行うため、失敗したCreateがIDを
// 消費することはありません。
func (s *Store) Create(title, description string, isImportant *bool) (uint64, error) {
	if title == "" || description == "" {
		return 0, ErrInvalidInput
	}

	// 採番: 読み取りと加算は分割不可の1ステップ
	// (ホストの直列化保証の下では単純な read-then-increment で十分)
	id := s.nextID
	s.nextID++

	timestamp := s.now()
	t := &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Done:        false,
		CreatedAt:   timestamp,
		UpdatedAt:   timestamp,
	}
	if isImportant != nil {
		t.IsImportant = *isImportant
	}

	s.tasks[id] = t
	return id, nil
}

// Get は指定IDのタスクのコピーを返します。存在しなければ ErrNotFound。
// 読み取り専用で、UpdatedAtは変化しません。
func (s *Store) Get(id uint64) (Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return *t, nil
}

// List は全タスクをID昇順で返します。
// 返り値はコピーなので、呼び出し側が書き換えてもストアには影響しません。
func (s *Store) List() []Task {
	return s.collect(func(*Task) bool { return true })
}

// Update は指定されたフィールドだけを適用します。nilのフィールドは
// 変更されません。フィールドがいくつ変わってもUpdatedAtの更新は1回です。
// 全フィールドがnilでも成功扱いで、UpdatedAtは更新されます。
//
// 空文字のタイトル・説明は ErrInvalidInput で拒否します（作成時と同じ
// 非空不変条件を更新時にも適用する方針。バリデーションは適用より先に
// 行うため、失敗したUpdateがレコードを部分的に書き換えることはありません）。
func (s *Store) Update(id uint64, u TaskUpdate) (Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	if (u.Title != nil && *u.Title == "") || (u.Description != nil && *u.Description == "") {
		return Task{}, ErrInvalidInput
	}

	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Done != nil {
		t.Done = *u.Done
	}
	if u.IsImportant != nil {
		t.IsImportant = *u.IsImportant
	}
	t.UpdatedAt = s.now()
	return *t, nil
}

// Delete は指定IDのタスクを削除します。存在しなければ ErrNotFound。
// 削除は恒久的で、そのIDが再割り当てされることはありません。
func (s *Store) Delete(id uint64) error {
	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// MarkDone はタスクを完了にします。冪等です。
func (s *Store) MarkDone(id uint64) (Task, error) {
	return s.setField(id, func(t *Task) { t.Done = true })
}

// ResetStatus はタスクを未完了に戻します。冪等です。
func (s *Store) ResetStatus(id uint64) (Task, error) {
	return s.setField(id, func(t *Task) { t.Done = false })
}

// MarkImportant はタスクを重要にします。冪等です。
func (s *Store) MarkImportant(id uint64) (Task, error) {
	return s.setField(id, func(t *Task) { t.IsImportant = true })
}

// ToggleImportance は重要フラグを反転します。呼ぶたびに状態が変わります。
func (s *Store) ToggleImportance(id uint64) (Task, error) {
	return s.setField(id, func(t *Task) { t.IsImportant = !t.IsImportant })
}

// setField は単一フィールド更新の共通部分です。
// 存在確認 → 変更 → UpdatedAt更新、の順で行います。
func (s *Store) setField(id uint64, apply func(*Task)) (Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	apply(t)
	t.UpdatedAt = s.now()
	return *t, nil
}

// ClearCompleted は完了済みタスクをすべて削除します。
// 対象が無ければ何もしません。未完了タスクには一切触れません。
func (s *Store) ClearCompleted() {
	for id, t := range s.tasks {
		if t.Done {
			delete(s.tasks, id)
		}
	}
}

// Count は現在格納されているタスク数を返します。
func (s *Store) Count() uint64 {
	return uint64(len(s.tasks))
}

// FindByStatus は完了状態が一致するタスクを返します。
func (s *Store) FindByStatus(done bool) []Task {
	return s.collect(func(t *Task) bool { return t.Done == done })
}

// FindByImportance は重要フラグが一致するタスクを返します。
func (s *Store) FindByImportance(important bool) []Task {
	return s.collect(func(t *Task) bool { return t.IsImportant == important })
}

// Important は重要なタスクだけを返します。
func (s *Store) Important() []Task {
	return s.FindByImportance(true)
}

// Completed は完了済みタスクだけを返します。
func (s *Store) Completed() []Task {
	return s.FindByStatus(true)
}

// Incomplete は未完了タスクだけを返します。
func (s *Store) Incomplete() []Task {
	return s.FindByStatus(false)
}

// FindByTitle はタイトルが完全一致するタスクを返します。
func (s *Store) FindByTitle(title string) []Task {
	return s.collect(func(t *Task) bool { return t.Title == title })
}

// FindByDescription は説明が完全一致するタスクを返します。
func (s *Store) FindByDescription(description string) []Task {
	return s.collect(func(t *Task) bool { return t.Description == description })
}

// CreatedAfter は指定時刻より後（厳密に大きい）に作成されたタスクを返します。
func (s *Store) CreatedAfter(timestamp uint64) []Task {
	return s.collect(func(t *Task) bool { return t.CreatedAt > timestamp })
}

// UpdatedAfter は指定時刻より後（厳密に大きい）に更新されたタスクを返します。
func (s *Store) UpdatedAfter(timestamp uint64) []Task {
	return s.collect(func(t *Task) bool { return t.UpdatedAt > timestamp })
}

// collect は条件に一致するタスクのコピーをID昇順で集めます。
// マップの反復順は不定なので、返す前に必ずソートします。
// 空の結果はエラーではなく空スライスです。
func (s *Store) collect(match func(*Task) bool) []Task {
	result := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if match(t) {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Snapshot はストアの全状態をシリアライズ可能な形で返します。
// ホスト環境のスナップショット機構（停止・再開をまたぐ保存）向けです。
func (s *Store) Snapshot() State {
	return State{
		Tasks:  s.List(),
		NextID: s.nextID,
	}
}

// Restore はSnapshotが返した形の状態からストアを再構築します。
// NextIDが既存のどのタスクIDよりも大きくない状態は、ID再利用に
// つながるため ErrInvalidInput で拒否します。失敗時、ストアの状態は
// 変化しません。
func (s *Store) Restore(state State) error {
	tasks := make(map[uint64]*Task, len(state.Tasks))
	for i := range state.Tasks {
		t := state.Tasks[i]
		if t.ID >= state.NextID {
			return ErrInvalidInput
		}
		tasks[t.ID] = &t
	}

	s.tasks = tasks
	s.nextID = state.NextID
	return nil
}
