package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"Armature/internal/auth"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		key     string
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Long: `Issue an HMAC-signed bearer token accepted by the HTTP service when it
runs with TOKEN_KEY set. The key defaults to $TOKEN_KEY.

Example:
  quickdesign token --subject site-office --ttl 720h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				return errors.New("no signing key: set TOKEN_KEY or pass --key")
			}
			if ttl <= 0 {
				return errors.New("--ttl must be positive")
			}
			token, err := (&auth.TokenAuth{Key: []byte(key)}).IssueToken(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&key, "key", os.Getenv("TOKEN_KEY"), "HMAC signing key")
	f.StringVarP(&subject, "subject", "s", "", "Token subject [required]")
	f.DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	cmd.MarkFlagRequired("subject")
	return cmd
}
