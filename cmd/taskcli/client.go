package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go-task-manager/backend/internal/taskstore"
)

// client はサーバーとのHTTP/JSONのやり取りを受け持ちます。
type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func newClient() *client {
	return &client{
		baseURL: serverURL(),
		token:   bearerToken(),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// do はリクエストを送り、JSONレスポンスをoutに読み込みます。
// 4xx/5xxはサーバーのエラーメッセージ付きのエラーにして返します。
func (c *client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (HTTP %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("server returned HTTP %d", resp.StatusCode)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// listFilters はlistコマンドのフラグ値です。ゼロ値は「指定なし」。
type listFilters struct {
	done         string // "true" / "false" / ""
	important    string
	title        string
	description  string
	createdAfter uint64
	updatedAfter uint64
}

// query は指定されたフィルタをクエリ文字列にします。
// サーバーはフィルタを1つしか受け付けないため、2つ以上はエラーです。
func (f listFilters) query() (string, error) {
	values := url.Values{}
	if f.done != "" {
		values.Set("done", f.done)
	}
	if f.important != "" {
		values.Set("important", f.important)
	}
	if f.title != "" {
		values.Set("title", f.title)
	}
	if f.description != "" {
		values.Set("description", f.description)
	}
	if f.createdAfter != 0 {
		values.Set("created_after", fmt.Sprintf("%d", f.createdAfter))
	}
	if f.updatedAfter != 0 {
		values.Set("updated_after", fmt.Sprintf("%d", f.updatedAfter))
	}

	if len(values) > 1 {
		return "", fmt.Errorf("at most one filter may be specified")
	}
	if len(values) == 0 {
		return "", nil
	}
	return "?" + values.Encode(), nil
}

// printTasks はタスク一覧を1行1件で出力します。
func printTasks(tasks []taskstore.Task) {
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return
	}
	for _, t := range tasks {
		printTask(t)
	}
}

func printTask(t taskstore.Task) {
	status := " "
	if t.Done {
		status = "x"
	}
	important := ""
	if t.IsImportant {
		important = " !"
	}
	fmt.Printf("%4d [%s]%s %s - %s\n", t.ID, status, important, t.Title, t.Description)
}
