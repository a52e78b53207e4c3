// Package main implements the taskcli client for the task manager API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverFlag string
	tokenFlag  string
)

var rootCmd = &cobra.Command{
	Use:           "taskcli",
	Short:         "taskcli - command line client for the task manager backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "server base URL (default $TASKS_SERVER or http://localhost:8080)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "bearer token for a server with auth enabled (default $TASKS_TOKEN)")
}

// serverURL はフラグ → 環境変数 → デフォルトの順で接続先を決めます。
func serverURL() string {
	if serverFlag != "" {
		return serverFlag
	}
	if env := os.Getenv("TASKS_SERVER"); env != "" {
		return env
	}
	return "http://localhost:8080"
}

func bearerToken() string {
	if tokenFlag != "" {
		return tokenFlag
	}
	return os.Getenv("TASKS_TOKEN")
}
