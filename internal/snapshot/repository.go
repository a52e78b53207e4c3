// Package snapshot はストア状態の保存・復元フックを提供します。
// コアのストアはI/Oを一切行わないため、停止・再開をまたぐ保存は
// このホスト側リポジトリの責務です。
package snapshot

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"go-task-manager/backend/internal/taskstore"
)

// ErrSnapshotNotFound は保存済みスナップショットが存在しない場合のエラーです。
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Repository はスナップショットのデータベース操作を行うための構造体です。
// スナップショットは常に1行だけで、保存のたびに上書きされます。
type Repository struct {
	DB *sql.DB
}

// NewRepository は新しいRepositoryインスタンスを作成します。
func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// EnsureSchema はスナップショット用テーブルを作成します（存在しなければ）。
func (r *Repository) EnsureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS store_snapshots (
			id TINYINT NOT NULL PRIMARY KEY,
			state LONGTEXT NOT NULL,
			saved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);`
	if _, err := r.DB.Exec(query); err != nil {
		return fmt.Errorf("could not create snapshot table: %w", err)
	}
	return nil
}

// Save はストア状態をJSONにして1行に保存します。
func (r *Repository) Save(state taskstore.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not encode snapshot state: %w", err)
	}

	_, err = r.DB.Exec(
		"REPLACE INTO store_snapshots (id, state) VALUES (1, ?)",
		string(payload),
	)
	if err != nil {
		log.Printf("Failed to save snapshot: %v", err)
		return fmt.Errorf("could not save snapshot: %w", err)
	}

	log.Printf("Snapshot saved (%d tasks, next id %d)", len(state.Tasks), state.NextID)
	return nil
}

// Load は保存済みのストア状態を読み出します。
// 一度も保存されていなければ ErrSnapshotNotFound を返します。
func (r *Repository) Load() (taskstore.State, error) {
	var payload string
	err := r.DB.QueryRow("SELECT state FROM store_snapshots WHERE id = 1").Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return taskstore.State{}, ErrSnapshotNotFound
		}
		return taskstore.State{}, fmt.Errorf("could not query snapshot: %w", err)
	}

	var state taskstore.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return taskstore.State{}, fmt.Errorf("could not decode snapshot state: %w", err)
	}
	return state, nil
}
