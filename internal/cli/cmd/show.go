package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/formview/internal/application/usecase"
	"github.com/bnema/formview/internal/cli"
	"github.com/bnema/formview/internal/infrastructure/config"
	"github.com/bnema/formview/internal/infrastructure/document"
	"github.com/bnema/formview/internal/infrastructure/webkit"
	"github.com/bnema/formview/internal/logging"
)

const watchInterval = 500 * time.Millisecond

var (
	showSchema   string
	showData     string
	showReadOnly bool
	showWatch    bool
	showStdin    bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Open a form in a WebKitGTK window",
	Long: `Open a form in a native window and print its events.

The schema and prefill files may be JSON or YAML. With --watch the form is
rendered again whenever one of them, or the config file, changes. With
--stdin, host commands are read from standard input, one per line:
"fetch" requests the submission and "set name=value" sets a field.

Examples:
  formview show --schema contact.json
  formview show --schema contact.yaml --data ada.json --read-only
  formview show --schema contact.json --watch
  echo "set name=Ada" | formview show --schema contact.json --stdin`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showSchema, "schema", "s", "", "form schema file (JSON or YAML)")
	showCmd.Flags().StringVarP(&showData, "data", "d", "", "prefill data file (JSON or YAML)")
	showCmd.Flags().BoolVar(&showReadOnly, "read-only", false, "render the form read-only")
	showCmd.Flags().BoolVarP(&showWatch, "watch", "w", false, "re-render when the schema, data or config changes")
	showCmd.Flags().BoolVar(&showStdin, "stdin", false, "read host commands (fetch, set name=value) from standard input")
	_ = showCmd.MarkFlagRequired("schema")
}

func runShow(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	cfg := app.Config

	if showStdin && (showSchema == "-" || showData == "-") {
		return fmt.Errorf("--stdin cannot be combined with form files read from standard input")
	}
	desc, err := loadDescriptor(showSchema, showData, showReadOnly)
	if err != nil {
		return err
	}
	synth, err := app.Synthesizer()
	if err != nil {
		return fmt.Errorf("create synthesizer: %w", err)
	}
	swappable := cli.NewSwappableSynthesizer(synth)

	ctx, stop := signal.NotifyContext(logging.WithComponent(app.Ctx(), "show"), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printer := cli.NewEventPrinter(cmd.OutOrStdout(), app.Theme, nil)

	return webkit.Run(ctx, webkit.WindowOptions{
		Title:          cfg.Window.Title,
		Width:          cfg.Window.Width,
		Height:         cfg.Window.Height,
		AssetDir:       cfg.Assets.Dir,
		EnableDevTools: cfg.Window.EnableDevTools,
	}, func(view *webkit.View) error {
		session := usecase.NewFormSession(view, swappable,
			usecase.WithBridgePrefix(cfg.Bridge.Prefix),
			usecase.WithScriptTimeout(cfg.Backend.ScriptTimeout()),
		)
		if err := session.Render(ctx, desc, printer); err != nil {
			return err
		}
		if showWatch {
			go watchAndRender(ctx, app, session, swappable, printer)
		}
		if showStdin {
			go readCommands(ctx, cmd, app, session)
		}
		return nil
	})
}

// readCommands runs host commands from standard input until EOF or ctx is
// done. Commands sent before the form is ready fail and are reported.
func readCommands(ctx context.Context, cmd *cobra.Command, app *cli.App, session *usecase.FormSession) {
	if err := cli.RunCommands(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), app.Theme, session); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("command input stopped")
	}
}

// watchAndRender renders the form again on file or config changes until
// ctx is done.
func watchAndRender(ctx context.Context, app *cli.App, session *usecase.FormSession, synth *cli.SwappableSynthesizer, printer *cli.EventPrinter) {
	log := logging.FromContext(ctx)

	rerender := func() {
		desc, err := loadDescriptor(showSchema, showData, showReadOnly)
		if err != nil {
			log.Warn().Err(err).Msg("form files unreadable, keeping current form")
			return
		}
		if err := session.Render(ctx, desc, printer); err != nil {
			log.Warn().Err(err).Msg("re-render failed")
		}
	}

	app.Manager.OnConfigChange(func(cfg *config.Config) {
		next, err := document.NewSynthesizer(document.ManifestFromConfig(cfg.Assets))
		if err != nil {
			log.Warn().Err(err).Msg("config change ignored")
			return
		}
		synth.Swap(next)
		log.Info().Msg("config changed, re-rendering")
		rerender()
	})
	if err := app.Manager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	if err := cli.WatchFiles(ctx, []string{showSchema, showData}, watchInterval, rerender); err != nil {
		log.Warn().Err(err).Msg("file watch stopped")
	}
}
