package transaction

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hance08/carteira/internal/app"
	"github.com/hance08/carteira/internal/attachment"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewAttachCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <transaction-id> <file>",
		Short: "Attach a PDF or PNG file to a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ownerID, err := a.RequireUser(ctx)
			if err != nil {
				return err
			}

			path, err := app.ExpandPath(args[1])
			if err != nil {
				return err
			}

			att, err := a.Service.Transaction.Attach(ctx, ownerID, args[0], attachment.AssetFromPath(path))
			if err != nil {
				return err
			}

			pterm.Success.Printf("Attached %s\n", attachment.FilenameFromPath(att.Path))
			return nil
		},
	}
}

func NewDetachCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "detach <transaction-id> <file-name>",
		Short: "Remove a file from a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ownerID, err := a.RequireUser(ctx)
			if err != nil {
				return err
			}

			if err := a.Service.Transaction.Detach(ctx, ownerID, args[0], args[1]); err != nil {
				return err
			}

			pterm.Success.Printf("Removed %s\n", args[1])
			return nil
		},
	}
}

type downloadRunner struct {
	app *app.App
	out string
}

func NewDownloadCmd(a *app.App) *cobra.Command {
	runner := &downloadRunner{app: a}

	cmd := &cobra.Command{
		Use:   "download <transaction-id> <file-name>",
		Short: "Save an attached file to disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd, args[0], args[1])
		},
	}
	cmd.Flags().StringVarP(&runner.out, "out", "o", "", "Destination path (defaults to the file name)")

	return cmd
}

func (r *downloadRunner) Run(cmd *cobra.Command, id, name string) error {
	ctx := cmd.Context()
	ownerID, err := r.app.RequireUser(ctx)
	if err != nil {
		return err
	}

	rc, att, err := r.app.Service.Transaction.OpenAttachment(ctx, ownerID, id, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	dest := r.out
	if dest == "" {
		dest = attachment.FilenameFromPath(att.Path)
	}
	if dest, err = app.ExpandPath(dest); err != nil {
		return err
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer f.Close()

	n, err := io.Copy(f, rc)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	abs, _ := filepath.Abs(dest)
	pterm.Success.Printf("Saved %s (%d bytes)\n", abs, n)
	return nil
}
