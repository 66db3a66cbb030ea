package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/application/usecase"
	"github.com/bnema/formview/internal/cli"
	"github.com/bnema/formview/internal/cli/styles"
	"github.com/bnema/formview/internal/infrastructure/chrome"
	"github.com/bnema/formview/internal/infrastructure/config"
	"github.com/bnema/formview/internal/infrastructure/sandbox"
	"github.com/bnema/formview/internal/logging"
)

const (
	defaultSimulateTimeout = 30 * time.Second
	// eventGrace covers chrome binding events still in flight after the
	// last command returned.
	eventGrace = 200 * time.Millisecond
)

// errLoadFailed is returned when the document reported loadFailed.
var errLoadFailed = errors.New("form failed to load")

var (
	simSchema   string
	simData     string
	simReadOnly bool
	simSet      []string
	simEdit     []string
	simFocus    []string
	simFetch    bool
	simBackend  string
	simTimeout  time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Script a form session and print its events",
	Long: `Render a form in the sandbox or a headless Chrome tab, apply host commands
and simulated user input, and print every event the form emits.

Steps run in this order: --set (host SetFieldValue), --edit (user typing),
--focus (user focus), --fetch (host FetchSubmission).

Examples:
  formview simulate --schema contact.json --set name=Ada --fetch
  formview simulate --schema contact.yaml --data ada.json --focus email
  formview simulate --schema contact.json --edit email=ada@example.com --backend chrome`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVarP(&simSchema, "schema", "s", "", "form schema file (JSON or YAML)")
	simulateCmd.Flags().StringVarP(&simData, "data", "d", "", "prefill data file (JSON or YAML)")
	simulateCmd.Flags().BoolVar(&simReadOnly, "read-only", false, "render the form read-only")
	simulateCmd.Flags().StringArrayVar(&simSet, "set", nil, "set a field from the host, name=value (repeatable)")
	simulateCmd.Flags().StringArrayVar(&simEdit, "edit", nil, "type into a field as the user, name=value (repeatable)")
	simulateCmd.Flags().StringArrayVar(&simFocus, "focus", nil, "focus a field as the user (repeatable)")
	simulateCmd.Flags().BoolVar(&simFetch, "fetch", false, "fetch the submission at the end")
	simulateCmd.Flags().StringVarP(&simBackend, "backend", "b", "", "sandbox or chrome (default from config, sandbox when it says webkit)")
	simulateCmd.Flags().DurationVar(&simTimeout, "timeout", defaultSimulateTimeout, "overall time limit")
	_ = simulateCmd.MarkFlagRequired("schema")
}

// simulatedView is a form view that can also play user input.
type simulatedView interface {
	port.FormView
	Edit(ctx context.Context, name, value string) error
	Focus(ctx context.Context, name string) error
	Close()
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	cfg := app.Config

	desc, err := loadDescriptor(simSchema, simData, simReadOnly)
	if err != nil {
		return err
	}
	sets, err := cli.ParseAssignments(simSet)
	if err != nil {
		return err
	}
	edits, err := cli.ParseAssignments(simEdit)
	if err != nil {
		return err
	}
	synth, err := app.Synthesizer()
	if err != nil {
		return fmt.Errorf("create synthesizer: %w", err)
	}

	ctx, cancel := context.WithTimeout(logging.WithComponent(app.Ctx(), "simulate"), simTimeout)
	defer cancel()

	kind, err := simulationBackend(simBackend, cfg.Backend.Kind)
	if err != nil {
		return err
	}
	view, err := openSimulatedView(ctx, kind, cfg)
	if err != nil {
		return err
	}
	defer view.Close()

	out := cmd.OutOrStdout()
	renderer := styles.NewEventRenderer(app.Theme)
	session := usecase.NewFormSession(view, synth,
		usecase.WithBridgePrefix(cfg.Bridge.Prefix),
		usecase.WithScriptTimeout(cfg.Backend.ScriptTimeout()),
	)
	defer func() { _ = session.Dispose(context.Background()) }()
	printer := cli.NewEventPrinter(out, app.Theme, session.SessionID)

	fmt.Fprintln(out, renderer.RenderStep("render", fmt.Sprintf("%s on %s", simSchema, kind)))
	if err := session.Render(ctx, desc, printer); err != nil {
		return err
	}
	select {
	case <-printer.Ready():
	case reason := <-printer.Failed():
		_ = session.Flush(ctx)
		return fmt.Errorf("%w: %s", errLoadFailed, reason)
	case <-ctx.Done():
		return fmt.Errorf("waiting for the form: %w", ctx.Err())
	}

	steps := simulationSteps(session, view, sets, edits, simFocus, simFetch)
	for _, step := range steps {
		if err := runStep(ctx, out, renderer, session, step, kind); err != nil {
			return err
		}
	}
	return finishEvents(ctx, session, kind)
}

type simulationStep struct {
	action string
	detail string
	run    func(ctx context.Context) error
}

func simulationSteps(session *usecase.FormSession, view simulatedView, sets, edits []cli.Assignment, focus []string, fetch bool) []simulationStep {
	var steps []simulationStep
	for _, a := range sets {
		steps = append(steps, simulationStep{
			action: "set",
			detail: a.Name + "=" + a.Value,
			run:    func(ctx context.Context) error { return session.SetFieldValue(ctx, a.Name, a.Value) },
		})
	}
	for _, a := range edits {
		steps = append(steps, simulationStep{
			action: "edit",
			detail: a.Name + "=" + a.Value,
			run:    func(ctx context.Context) error { return view.Edit(ctx, a.Name, a.Value) },
		})
	}
	for _, name := range focus {
		steps = append(steps, simulationStep{
			action: "focus",
			detail: name,
			run:    func(ctx context.Context) error { return view.Focus(ctx, name) },
		})
	}
	if fetch {
		steps = append(steps, simulationStep{
			action: "fetch",
			detail: "submission",
			run: func(ctx context.Context) error {
				_, err := session.FetchSubmission(ctx)
				return err
			},
		})
	}
	return steps
}

func runStep(ctx context.Context, out io.Writer, renderer *styles.EventRenderer, session *usecase.FormSession, step simulationStep, kind config.BackendKind) error {
	fmt.Fprintln(out, renderer.RenderStep(step.action, step.detail))
	if err := step.run(ctx); err != nil {
		fmt.Fprintln(out, renderer.RenderError(err))
		if errors.Is(err, sandbox.ErrFieldNotFound) {
			return nil
		}
		return fmt.Errorf("%s %s: %w", step.action, step.detail, err)
	}
	return finishEvents(ctx, session, kind)
}

// finishEvents waits until the events caused so far were printed.
func finishEvents(ctx context.Context, session *usecase.FormSession, kind config.BackendKind) error {
	if kind == config.BackendChrome {
		select {
		case <-time.After(eventGrace):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return session.Flush(ctx)
}

func simulationBackend(flag string, configured config.BackendKind) (config.BackendKind, error) {
	kind := config.BackendKind(flag)
	if flag == "" {
		kind = configured
		if kind == config.BackendWebKit {
			kind = config.BackendSandbox
		}
	}
	switch kind {
	case config.BackendSandbox, config.BackendChrome:
		return kind, nil
	default:
		return "", fmt.Errorf("simulate supports the sandbox and chrome backends, not %q", kind)
	}
}

func openSimulatedView(ctx context.Context, kind config.BackendKind, cfg *config.Config) (simulatedView, error) {
	if kind == config.BackendSandbox {
		return sandbox.New(), nil
	}
	view := chrome.New(chrome.Options{
		AssetDir:     cfg.Assets.Dir,
		ExecPath:     cfg.Backend.Chrome.ExecPath,
		Headless:     cfg.Backend.Chrome.Headless,
		StartTimeout: time.Duration(cfg.Backend.Chrome.StartTimeoutSec) * time.Second,
		ContainerID:  cfg.Assets.ContainerID,
	})
	if err := view.Start(ctx); err != nil {
		return nil, err
	}
	return view, nil
}
