package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/corpsite/pkg/config"
	"github.com/dmitrymomot/corpsite/pkg/mailer"
	"github.com/dmitrymomot/corpsite/svc/dispatch"
)

func sendCmd() *cobra.Command {
	var (
		req     dispatch.Request
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one corporate email using the configured transport",
		Example: `  corpsite send --to ana@example.com --subject "Hola" --message "Primera línea
Segunda línea"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := config.LoadEnv(envFile); err != nil {
					return err
				}
			}

			out, err := dispatch.New(dispatch.EnvSource()).Send(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent via %s, message id %s\n", out.Transport, out.MessageID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.To, "to", "", "recipient address")
	cmd.Flags().StringVar(&req.Subject, "subject", "", "subject line")
	cmd.Flags().StringVar(&req.Message, "message", "", "message body")
	cmd.Flags().StringVar(&envFile, "env-file", "", "load variables from this .env file first")
	return cmd
}

func describe(err error) error {
	switch dispatch.KindOf(err) {
	case dispatch.KindMissingField:
		return fmt.Errorf("missing required flags: %s", strings.Join(dispatch.MissingFields(err), ", "))
	case dispatch.KindConfiguration:
		return fmt.Errorf("mail is not configured, set MAIL_SENDER_EMAIL and either MAIL_API_KEY or the SMTP credentials: %w", err)
	case dispatch.KindProvider:
		pe, _ := mailer.AsProviderError(err)
		return fmt.Errorf("provider rejected the message (status %d): %s", pe.Status, pe.Message)
	}
	return err
}
