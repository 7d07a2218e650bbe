package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/hance08/carteira/cmd/transaction"
	"github.com/hance08/carteira/internal/app"
	"github.com/hance08/carteira/internal/config"
	"github.com/hance08/carteira/internal/errhandler"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// filled in once flags are parsed, before any command runs
	application := &app.App{}
	cleanup := func() {}

	rootCmd := &cobra.Command{
		Use:           "carteira",
		Short:         "carteira is a CLI personal finance ledger",
		Long:          `carteira records money coming in and going out, browses the ledger with filters and summarizes the last 30 days.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}

			built, done, err := app.NewApp(cmd.Context(), cfg, migrations)
			if err != nil {
				return err
			}
			*application = *built
			cleanup = done
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(NewSignUpCmd(application))
	rootCmd.AddCommand(NewLoginCmd(application))
	rootCmd.AddCommand(NewLogoutCmd(application))
	rootCmd.AddCommand(NewWhoamiCmd(application))
	rootCmd.AddCommand(NewHomeCmd(application))
	rootCmd.AddCommand(NewLedgerCmd(application))
	rootCmd.AddCommand(NewAddCmd(application))
	rootCmd.AddCommand(NewKindsCmd(application))
	rootCmd.AddCommand(NewInfoCmd(application))
	rootCmd.AddCommand(transaction.NewTransactionCmd(application))

	err := rootCmd.ExecuteContext(ctx)
	cleanup()

	if err != nil && errhandler.HandleError(err) {
		os.Exit(1)
	}
}

func initConfig() error {
	// a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	if cfgFile == "" {
		if err := createDefaultConfig(); err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("CARTEIRA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {

		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}

// setDefaults registers every key so the written config file lists them and
// AutomaticEnv can override each one.
func setDefaults() {
	d := config.NewDefault()

	viper.SetDefault("database.driver", d.Database.Driver)
	viper.SetDefault("database.path", d.Database.Path)
	viper.SetDefault("database.url", d.Database.URL)
	viper.SetDefault("realtime.driver", d.Realtime.Driver)
	viper.SetDefault("realtime.url", d.Realtime.URL)
	viper.SetDefault("realtime.exchange", d.Realtime.Exchange)
	viper.SetDefault("storage.driver", d.Storage.Driver)
	viper.SetDefault("storage.dir", d.Storage.Dir)
	viper.SetDefault("storage.bucket", d.Storage.Bucket)
	viper.SetDefault("storage.credentials", d.Storage.Credentials)
	viper.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	viper.SetDefault("auth.session_ttl", d.Auth.SessionTTL.String())
	viper.SetDefault("auth.session_file", d.Auth.SessionFile)
	viper.SetDefault("ledger.pagination", d.Ledger.Pagination)
	viper.SetDefault("ledger.realtime", d.Ledger.Realtime)
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.file", d.Log.File)
}

func createDefaultConfig() error {
	appDir, err := app.GetAppDataDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
