package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage ledger accounts",
	}

	cmd.AddCommand(newAccountInitCmd())
	cmd.AddCommand(newAccountGetCmd())
	cmd.AddCommand(newAccountAddCmd())
	cmd.AddCommand(newAccountSendCmd())

	return cmd
}

func newAccountInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <player-id>",
		Short: "Initialize an account (no-op if it exists)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LedgerResult
			body := map[string]any{"playerId": args[0]}
			if err := client.Post("/api/v1/ledger/initialize-user", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newAccountGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: "Show an account's balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Account
			if err := client.Get("/api/v1/accounts/"+args[0], &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newAccountAddCmd() *cobra.Command {
	var requestID string

	cmd := &cobra.Command{
		Use:   "add <player-id> <amount>",
		Short: "Credit tickets to an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			body := map[string]any{"playerId": args[0], "amount": amount}
			if requestID != "" {
				body["requestId"] = requestID
			}

			var result LedgerResult
			if err := client.Post("/api/v1/ledger/add-tickets", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&requestID, "request-id", "", "Idempotency key; retries with the same ID credit once")

	return cmd
}

func newAccountSendCmd() *cobra.Command {
	var requestID string

	cmd := &cobra.Command{
		Use:   "send <player-id> <amount>",
		Short: "Send tickets to a player (amount must be positive)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			body := map[string]any{"playerId": args[0], "amount": amount}
			if requestID != "" {
				body["requestId"] = requestID
			}

			var result LedgerResult
			if err := client.Post("/api/v1/ledger/send-tickets", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&requestID, "request-id", "", "Idempotency key; retries with the same ID credit once")

	return cmd
}

func parseAmount(raw string) (int64, error) {
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount must be an integer: %q", raw)
	}
	return amount, nil
}
