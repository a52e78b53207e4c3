package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the total number of tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var res struct {
			Count uint64 `json:"count"`
		}
		if err := newClient().do(http.MethodGet, "/api/count", nil, &res); err != nil {
			return err
		}
		fmt.Println(res.Count)
		return nil
	},
}

var clearCompletedCmd = &cobra.Command{
	Use:   "clear-completed",
	Short: "Delete every completed task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().do(http.MethodPost, "/api/clear-completed", nil, nil); err != nil {
			return err
		}
		fmt.Println("completed tasks cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(clearCompletedCmd)
}
