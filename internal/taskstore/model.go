// Package taskstore はタスクレコードのインメモリストアを提供します。
// 状態はタスクのマッピングと次のID用カウンタの2つだけで、
// 排他制御は呼び出し側（ホスト環境）の責務です。
package taskstore

// Task は1件のタスクレコードを表します。
// IDとCreatedAtは作成時に確定し、以後変更されません。
type Task struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
	IsImportant bool   `json:"is_important"`

	// CreatedAt / UpdatedAt: ホストのクロックが返すナノ秒値。
	// UpdatedAt >= CreatedAt が常に成り立ちます。
	CreatedAt uint64 `json:"created_at"`
	UpdatedAt uint64 `json:"updated_at"`
}

// TaskUpdate はUpdateで適用する変更内容です。
// nil のフィールドは変更されません。
type TaskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
	IsImportant *bool   `json:"is_important"`
}

// State はスナップショット境界を越えるためのシリアライズ可能な形です。
// ストア自体は保存も復元のI/Oも行いません（ホスト側の責務）。
type State struct {
	Tasks  []Task `json:"tasks"`
	NextID uint64 `json:"next_id"`
}
