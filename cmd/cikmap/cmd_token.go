package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	jwtmw "cikmap_backend/internal/platform/jwt"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

// tokenCmd issues bearer tokens for API clients
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the HTTP API",
	Long: `Sign a JWT with JWT_SECRET for the given API client.

The token is accepted by the server when it runs with the same secret.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl := cfg.JWT.Expiration
		if tokenTTL > 0 {
			ttl = tokenTTL
		}
		return runToken(cmd.OutOrStdout(), jwtmw.NewGenerator(cfg.JWT.Secret, ttl), cfg.JWT.Secret, tokenSubject)
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "API client name (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default from JWT_EXPIRATION)")
	_ = tokenCmd.MarkFlagRequired("subject")
}

var errNoSecret = errors.New("JWT_SECRET is not set")

func runToken(w io.Writer, gen jwtmw.Generator, secret, subject string) error {
	if secret == "" {
		return errNoSecret
	}
	token, err := gen.GenerateToken(subject)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
