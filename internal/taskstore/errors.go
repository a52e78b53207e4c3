package taskstore

import "errors"

// ErrNotFound は指定IDのタスクが存在しない場合のエラーです。
var ErrNotFound = errors.New("task not found")

// ErrInvalidInput はタイトルまたは説明が空の場合のエラーです。
var ErrInvalidInput = errors.New("invalid input")

// ErrDuplicateTask は重複検出用に予約されています。
// IDは再利用されないため、現在どの操作からも返されません。
var ErrDuplicateTask = errors.New("duplicate task")
