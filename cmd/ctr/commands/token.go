package commands

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

// NewTokenCommand creates the token command.
func NewTokenCommand() *cobra.Command {
	var (
		refresh bool
		reveal  bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Show the current access token",
		Long: `Obtain an access token with the configured client credentials and display it.

The token is cached in the config file and reused until it expires.
Use --refresh to force a new token exchange.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := createClient(ctx, cmd)
			if err != nil {
				return err
			}

			if refresh {
				err = client.Reauthorize(ctx)
				if err != nil {
					return fmt.Errorf("failed to refresh token: %w", err)
				}
			}

			return displayTokenInfo(cmd, client.Token(), reveal)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "exchange the client credentials for a new token")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the access token instead of masking it in the table")

	return cmd
}

func displayTokenInfo(cmd *cobra.Command, token *oauth2.Token, reveal bool) error {
	tokenInfo := map[string]interface{}{
		"access_token": token.AccessToken,
		"token_type":   token.TokenType,
	}

	if !token.Expiry.IsZero() {
		tokenInfo["expires_at"] = token.Expiry.Format(time.RFC3339)
		tokenInfo["expires_in"] = int(time.Until(token.Expiry).Seconds())
	}

	if scope := token.Extra("scope"); scope != nil {
		tokenInfo["scope"] = scope
	}

	return writeOutput(cmd.OutOrStdout(), tokenInfo, func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		accessToken := Masked
		if reveal {
			accessToken = token.AccessToken
		}

		_ = table.Append("Access Token", accessToken)
		_ = table.Append("Token Type", token.TokenType)

		if !token.Expiry.IsZero() {
			_ = table.Append("Expires At", token.Expiry.Format(time.RFC3339))
			_ = table.Append("Expires In", fmt.Sprintf("%d seconds", int(time.Until(token.Expiry).Seconds())))
		} else {
			_ = table.Append("Expires At", NotAvailable)
		}

		if scope, ok := token.Extra("scope").(string); ok && scope != "" {
			_ = table.Append("Scope", scope)
		}

		return nil
	})
}
