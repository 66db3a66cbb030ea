package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/formview/internal/cli/styles"
	"github.com/bnema/formview/internal/domain/entity"
)

// ErrUnknownCommand is returned for lines the command loop cannot parse.
var ErrUnknownCommand = errors.New("unknown command (use: fetch, set name=value, help)")

// HostCommander issues host commands against a rendered form.
type HostCommander interface {
	FetchSubmission(ctx context.Context) (entity.RequestID, error)
	SetFieldValue(ctx context.Context, name, value string) error
}

const commandHelp = "fetch | set name=value | help"

// RunCommands reads one command per line from in until EOF or ctx is done.
// Failed commands are printed and the loop continues.
func RunCommands(ctx context.Context, in io.Reader, out io.Writer, theme *styles.Theme, session HostCommander) error {
	renderer := styles.NewEventRenderer(theme)
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if err := runCommand(ctx, out, renderer, session, line); err != nil {
				fmt.Fprintln(out, renderer.RenderError(err))
			}
		}
	}
}

func runCommand(ctx context.Context, out io.Writer, renderer *styles.EventRenderer, session HostCommander, line string) error {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "":
		return nil
	case "help":
		fmt.Fprintln(out, renderer.RenderStep("help", commandHelp))
		return nil
	case "fetch":
		fmt.Fprintln(out, renderer.RenderStep("fetch", "submission"))
		_, err := session.FetchSubmission(ctx)
		return err
	case "set":
		assignments, err := ParseAssignments([]string{rest})
		if err != nil {
			return err
		}
		a := assignments[0]
		fmt.Fprintln(out, renderer.RenderStep("set", a.Name+"="+a.Value))
		return session.SetFieldValue(ctx, a.Name, a.Value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
	}
}
