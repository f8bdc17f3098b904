package main

import (
	"context"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/adityarawat/prepometer/internal/auth"
	"github.com/adityarawat/prepometer/internal/cli"
	"github.com/adityarawat/prepometer/internal/config"
	"github.com/adityarawat/prepometer/internal/constants"
	"github.com/adityarawat/prepometer/internal/errors"
	"github.com/adityarawat/prepometer/internal/logger"
	"github.com/adityarawat/prepometer/internal/remote"
	"github.com/adityarawat/prepometer/internal/storage"
	"github.com/adityarawat/prepometer/internal/sync"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config directory." type:"path" default:"~/.config/prepometer"`
	Debug   bool   `help:"Enable debug logging."`

	Init  cli.InitCmd `cmd:"" help:"Initialize prepometer storage."`
	Tui   cli.TuiCmd  `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Topic struct {
		Add    cli.TopicAddCmd    `cmd:"" help:"Add a checklist topic."`
		List   cli.TopicListCmd   `cmd:"" help:"List checklist topics."`
		Done   cli.TopicDoneCmd   `cmd:"" help:"Mark a topic done."`
		Edit   cli.TopicEditCmd   `cmd:"" help:"Edit a topic."`
		Delete cli.TopicDeleteCmd `cmd:"" help:"Delete a topic."`
	} `cmd:"" help:"Manage the study checklist."`
	Log struct {
		Add  cli.LogAddCmd  `cmd:"" help:"Log a study day."`
		List cli.LogListCmd `cmd:"" help:"List logged study days."`
	} `cmd:"" help:"Manage the daily study log."`
	Progress cli.ProgressCmd `cmd:"" help:"Show per-subject progress."`
	Export   struct {
		Excel cli.ExportExcelCmd `cmd:"" help:"Export everything to an XLSX workbook."`
		Csv   cli.ExportCsvCmd   `cmd:"" help:"Export the checklist as CSV."`
	} `cmd:"" help:"Export study data."`
	Login  cli.LoginCmd  `cmd:"" help:"Sign in to your prep vault."`
	Logout cli.LogoutCmd `cmd:"" help:"Sign out."`
	Whoami cli.WhoamiCmd `cmd:"" help:"Show the signed-in account."`
	Import cli.ImportCmd `cmd:"" help:"Push all local data to your prep vault."`
	Pull   cli.PullCmd   `cmd:"" help:"Fetch remote data, replacing non-empty local collections."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`
	Reset  cli.ResetCmd  `cmd:"" help:"Reset local data to the default checklist."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("AFCAT study tracker with checklist, daily logs, and optional sync"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	configDir := config.ExpandPath(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatalf("failed to set up logging: %v", err)
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		errors.Fatal(err)
	}

	var store storage.Provider
	if cfg.Storage == "sqlite" {
		store = storage.NewSQLiteStore(filepath.Join(configDir, "prepometer.db"))
	} else {
		store = storage.NewJSONStore(configDir)
	}
	if err := store.Init(); err != nil {
		errors.Fatalf("failed to open storage: %v", err)
	}
	defer store.Close()

	appCtx := &cli.Context{Config: cfg, Store: store}

	// A configured vault DSN enables the remote gateway and auth. Failures
	// here are not fatal; the app degrades to local-only.
	var gateway *remote.PostgresGateway
	if cfg.Remote.DSN != "" {
		gateway, err = remote.OpenPostgres(cfg.Remote.DSN)
		if err != nil {
			logger.Warn("Prep vault unreachable, running local-only", "error", err)
		} else {
			defer gateway.Close()
			appCtx.RemoteDB = gateway.DB()

			mailer := auth.NewMailer(cfg.Email, cfg.BaseURL)
			session, err := auth.NewSession(gateway.DB(), mailer)
			if err != nil {
				logger.Warn("Auth unavailable, running local-only", "error", err)
			} else {
				appCtx.Session = session
			}
		}
	}

	if gateway != nil {
		appCtx.Reconciler = sync.New(store, gateway)
	} else {
		appCtx.Reconciler = sync.New(store, nil)
	}

	// Resume a cached session before the command runs so topic and log
	// mutations push to the vault.
	if appCtx.Session != nil {
		resumeSession(appCtx)
	}

	err = ctx.Run(appCtx)

	// Let in-flight pushes land before the process exits.
	appCtx.Reconciler.Wait()

	if err != nil {
		errors.Fatal(err)
	}
}

func resumeSession(appCtx *cli.Context) {
	token, err := auth.GetCachedToken()
	if err != nil {
		return
	}

	appCtx.Reconciler.BeginAuth()
	bg := context.Background()
	if !appCtx.Session.Resume(bg, token) {
		appCtx.Reconciler.FailAuth()
		return
	}
	if err := appCtx.Reconciler.CompleteAuth(bg, appCtx.Session.Current()); err != nil {
		logger.Warn("Pull after session resume failed", "error", err)
	}
}
