package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var tokenAPIKey string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Exchange an API key for a bearer token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var res struct {
			Token string `json:"token"`
		}
		payload := map[string]string{"api_key": tokenAPIKey}
		if err := newClient().do(http.MethodPost, "/api/token", payload, &res); err != nil {
			return err
		}
		fmt.Println(res.Token)
		return nil
	},
}

// hash-key はサーバーの API_KEY_HASH に設定する値を作るためのヘルパーです。
var hashKeyCmd = &cobra.Command{
	Use:   "hash-key KEY",
	Short: "Print the bcrypt hash of an API key for the server's API_KEY_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash key: %w", err)
		}
		fmt.Println(string(hash))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenAPIKey, "api-key", "", "API key to exchange")
	if err := tokenCmd.MarkFlagRequired("api-key"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(hashKeyCmd)
}
