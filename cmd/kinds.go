package cmd

import (
	"github.com/hance08/carteira/internal/app"
	"github.com/hance08/carteira/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewKindsCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List transaction kinds",
		Long:  `List the kinds a transaction can have, grouped into money in and money out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := a.Service.Kind.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			return views.RenderKinds(kinds)
		},
	}
}
