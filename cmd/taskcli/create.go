package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var createImportant bool

var createCmd = &cobra.Command{
	Use:   "create TITLE DESCRIPTION",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]interface{}{
			"title":       args[0],
			"description": args[1],
		}
		if createImportant {
			payload["is_important"] = true
		}

		var res struct {
			ID uint64 `json:"id"`
		}
		if err := newClient().do(http.MethodPost, "/api/tasks", payload, &res); err != nil {
			return err
		}
		fmt.Printf("created task %d\n", res.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().BoolVar(&createImportant, "important", false, "mark the task as important")
	rootCmd.AddCommand(createCmd)
}
