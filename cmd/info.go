package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hance08/carteira/internal/app"
	"github.com/hance08/carteira/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database, change feed, file storage and session details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: a,
			}

			return runner.Run(cmd.Context())
		},
	}
}

func (r *infoRunner) Run(ctx context.Context) error {
	cfg := r.app.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	items := views.SystemInfoItem{
		ConfigPath:  configPath,
		Database:    cfg.Database.Driver,
		Realtime:    cfg.Realtime.Driver,
		Storage:     r.storageLocation(),
		SessionFile: orDefault(cfg.Auth.SessionFile, filepath.Join(r.app.AppDir, "session")),
		LogFile:     orDefault(cfg.Log.File, filepath.Join(r.app.AppDir, "carteira.log")),
		AppDataDir:  r.app.AppDir,
	}

	if cfg.Database.Driver == "postgres" {
		items.DBLocation = "(connection URL)"
		items.DBExists = true
	} else {
		dbPath, _ := app.ExpandPath(orDefault(cfg.Database.Path, filepath.Join(r.app.AppDir, "carteira.db")))
		items.DBLocation = dbPath
		if _, err := os.Stat(dbPath); err == nil {
			items.DBExists = true
		}
	}

	if profile, err := r.app.Identity.CurrentProfile(ctx); err == nil {
		items.SignedInAs = fmt.Sprintf("%s <%s>", profile.Name, profile.Email)
	}

	return views.RenderSystemInfo(items)
}

func (r *infoRunner) storageLocation() string {
	s := r.app.Config.Storage
	if s.Driver == "gcs" {
		return fmt.Sprintf("gcs://%s", s.Bucket)
	}
	dir, _ := app.ExpandPath(orDefault(s.Dir, filepath.Join(r.app.AppDir, "files")))
	return fmt.Sprintf("fs (%s)", dir)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
