package cmd

import (
	"github.com/hance08/carteira/internal/app"
	"github.com/hance08/carteira/internal/ui"
	"github.com/hance08/carteira/internal/ui/prompts"
	"github.com/hance08/carteira/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewSignUpCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create a profile and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := prompts.PromptSignUp()
			if err != nil {
				return err
			}

			profile, err := a.Identity.SignUp(cmd.Context(), creds.Email, creds.Name, creds.Password)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Welcome, %s! You are signed in.\n", profile.Name)
			return nil
		},
	}
}

type loginRunner struct {
	app   *app.App
	email string
}

func NewLoginCmd(a *app.App) *cobra.Command {
	runner := &loginRunner{app: a}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd)
		},
	}
	cmd.Flags().StringVarP(&runner.email, "email", "e", "", "Profile email")

	return cmd
}

func (r *loginRunner) Run(cmd *cobra.Command) error {
	creds, err := prompts.PromptLogin(r.email)
	if err != nil {
		return err
	}

	profile, err := r.app.Identity.SignIn(cmd.Context(), creds.Email, creds.Password)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Signed in as %s\n", profile.Name)
	return nil
}

func NewLogoutCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Identity.SignOut(); err != nil {
				return err
			}
			pterm.Success.Println("Signed out")
			return nil
		},
	}
}

func NewWhoamiCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile and its balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.Identity.CurrentProfile(cmd.Context())
			if err != nil {
				return err
			}

			balance, err := a.Store.Balance(cmd.Context(), profile.ID)
			if err != nil {
				return err
			}

			ui.PrintL2Title("Profile")
			return pterm.DefaultTable.WithData(pterm.TableData{
				{"Name", profile.Name},
				{"Email", profile.Email},
				{"ID", profile.ID},
				{"Saldo", views.ColoredBalance(balance)},
			}).Render()
		},
	}
}
