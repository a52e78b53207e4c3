// Package testutil はテスト用のルーター・ストア構築ヘルパーを提供します。
package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gin-gonic/gin"

	"go-task-manager/backend/internal/routes"
	"go-task-manager/backend/internal/services"
	"go-task-manager/backend/internal/taskstore"
)

// FakeClock は呼ばれるたびに1進む決定的なクロックです。
// ストアはクロックに単調非減少しか要求しないので、テストでは
// これで十分です。
type FakeClock struct {
	T uint64
}

// Now は現在値を1進めて返します。
func (c *FakeClock) Now() uint64 {
	c.T++
	return c.T
}

// SetupTestRouter はテスト用のGinルーターと各レイヤーをセットアップします。
// 認証の有無は環境変数 API_KEY_HASH に従います（テスト側で設定・解除する）。
func SetupTestRouter(t *testing.T) (*gin.Engine, *services.TaskService, *FakeClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := &FakeClock{}
	store := taskstore.New(clock.Now)
	taskService := services.NewTaskService(store)
	router := routes.SetupRouter(taskService)

	return router, taskService, clock
}

// CreateTestTask はHTTP経由でテスト用タスクを作成し、割り当てられたIDを返します。
func CreateTestTask(t *testing.T, router *gin.Engine, title, description string, isImportant bool) uint64 {
	t.Helper()

	payload := map[string]interface{}{
		"title":       title,
		"description": description,
	}
	if isImportant {
		payload["is_important"] = true
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, "タスク作成に失敗しました: %s", resp.Body.String())

	var created struct {
		ID uint64 `json:"id"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &created)
	require.NoError(t, err)
	return created.ID
}

// GetToken はAPIキーと引き換えにJWTトークンを取得します。
func GetToken(t *testing.T, router *gin.Engine, apiKey string) (string, error) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"api_key": apiKey})
	req, _ := http.NewRequest(http.MethodPost, "/api/token", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d: %s", resp.Code, resp.Body.String())
	}

	var tokenRes map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &tokenRes); err != nil {
		return "", fmt.Errorf("failed to unmarshal token response: %w", err)
	}

	token, ok := tokenRes["token"].(string)
	if !ok {
		return "", errors.New("token not found or not a string in token response")
	}
	return token, nil
}
