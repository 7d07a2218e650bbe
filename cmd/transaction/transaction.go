/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package transaction

import (
	"github.com/hance08/carteira/internal/app"
	"github.com/spf13/cobra"
)

// NewTransactionCmd groups the commands that act on a single transaction.
func NewTransactionCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    "Manage transactions: view details, edit, delete, or manage attached files.",
	}

	cmd.AddCommand(NewShowCmd(a))
	cmd.AddCommand(NewEditCmd(a))
	cmd.AddCommand(NewDeleteCmd(a))
	cmd.AddCommand(NewAttachCmd(a))
	cmd.AddCommand(NewDetachCmd(a))
	cmd.AddCommand(NewDownloadCmd(a))

	return cmd
}
