package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"go-task-manager/backend/internal/taskstore"
)

var (
	listDone         bool
	listNotDone      bool
	listImportant    bool
	listNotImportant bool
	listTitle        string
	listDescription  string
	listCreatedAfter uint64
	listUpdatedAfter uint64
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := listFilters{
			title:        listTitle,
			description:  listDescription,
			createdAfter: listCreatedAfter,
			updatedAfter: listUpdatedAfter,
		}
		if listDone {
			filters.done = "true"
		}
		if listNotDone {
			filters.done = "false"
		}
		if listImportant {
			filters.important = "true"
		}
		if listNotImportant {
			filters.important = "false"
		}

		query, err := filters.query()
		if err != nil {
			return err
		}

		var tasks []taskstore.Task
		if err := newClient().do(http.MethodGet, "/api/tasks"+query, nil, &tasks); err != nil {
			return err
		}
		printTasks(tasks)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listDone, "done", false, "only completed tasks")
	listCmd.Flags().BoolVar(&listNotDone, "not-done", false, "only incomplete tasks")
	listCmd.Flags().BoolVar(&listImportant, "important", false, "only important tasks")
	listCmd.Flags().BoolVar(&listNotImportant, "not-important", false, "only non-important tasks")
	listCmd.Flags().StringVar(&listTitle, "title", "", "exact title match")
	listCmd.Flags().StringVar(&listDescription, "description", "", "exact description match")
	listCmd.Flags().Uint64Var(&listCreatedAfter, "created-after", 0, "created strictly after this nanosecond timestamp")
	listCmd.Flags().Uint64Var(&listUpdatedAfter, "updated-after", 0, "updated strictly after this nanosecond timestamp")
	rootCmd.AddCommand(listCmd)
}
