// Command token mints an API bearer token for a client.
//
//	JWT_SECRET=... go run ./cmd/token --client dashboard --ttl 720h
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"company_intel/internal/platform/env"
	jwtmw "company_intel/internal/platform/jwt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		clientID string
		ttl      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			env.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := jwtmw.NewGenerator(env.Get(jwtmw.EnvKeyJWTSecret, ""), ttl)
			token, err := gen.GenerateToken(clientID)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "client id stored in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 720*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}
