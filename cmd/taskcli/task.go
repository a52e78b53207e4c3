package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"go-task-manager/backend/internal/taskstore"
)

func parseIDArg(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a single task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		var task taskstore.Task
		if err := newClient().do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil, &task); err != nil {
			return err
		}
		printTask(task)
		fmt.Printf("     created_at=%d updated_at=%d\n", task.CreatedAt, task.UpdatedAt)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a task permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		if err := newClient().do(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil); err != nil {
			return err
		}
		fmt.Printf("deleted task %d\n", id)
		return nil
	},
}

var (
	updateTitle       string
	updateDescription string
)

var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a task's title and/or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}

		// 指定されたフラグだけを送る（送らないフィールドは変更されない）
		payload := map[string]interface{}{}
		if cmd.Flags().Changed("title") {
			payload["title"] = updateTitle
		}
		if cmd.Flags().Changed("description") {
			payload["description"] = updateDescription
		}

		var task taskstore.Task
		if err := newClient().do(http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), payload, &task); err != nil {
			return err
		}
		printTask(task)
		return nil
	},
}

// mutateCommand は単一フィールド更新系のコマンドを作ります。
func mutateCommand(use, short, action string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			var task taskstore.Task
			if err := newClient().do(http.MethodPost, fmt.Sprintf("/api/tasks/%d/%s", id, action), nil, &task); err != nil {
				return err
			}
			printTask(task)
			return nil
		},
	}
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(mutateCommand("done", "Mark a task as completed", "done"))
	rootCmd.AddCommand(mutateCommand("reset", "Mark a task as not completed", "reset"))
	rootCmd.AddCommand(mutateCommand("important", "Mark a task as important", "important"))
	rootCmd.AddCommand(mutateCommand("toggle", "Toggle a task's importance", "toggle-important"))
}
