package webkit

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/formview/internal/logging"
)

// AppID is the GTK application id of the form window.
const AppID = "io.github.bnema.formview"

// WindowOptions configures the window opened by Run.
type WindowOptions struct {
	Title          string
	Width          int
	Height         int
	AssetDir       string
	EnableDevTools bool
}

// Run opens a GTK window hosting a View and calls ready with it on the main
// thread. It blocks until the window is closed or ctx is done.
func Run(ctx context.Context, opts WindowOptions, ready func(*View) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := logging.FromContext(ctx).With().Str("component", "webkit-app").Logger()
	app := gtk.NewApplication(AppID, gio.ApplicationFlagsNone)

	var runErr error
	app.ConnectActivate(func() {
		view, err := NewView(ctx, Options{
			AssetDir:       opts.AssetDir,
			EnableDevTools: opts.EnableDevTools,
		})
		if err != nil {
			runErr = err
			app.Quit()
			return
		}

		win := gtk.NewApplicationWindow(app)
		win.SetTitle(opts.Title)
		win.SetDefaultSize(opts.Width, opts.Height)
		win.SetChild(view.Widget())
		win.ConnectCloseRequest(func() bool {
			view.Close()
			return false
		})
		win.Present()

		if err := ready(view); err != nil {
			runErr = err
			win.Close()
		}
	})

	stop := context.AfterFunc(ctx, func() {
		glib.IdleAdd(func() bool {
			app.Quit()
			return false
		})
	})
	defer stop()

	log.Debug().Str("app_id", AppID).Msg("starting GTK application")
	if code := app.Run([]string{os.Args[0]}); code != 0 && runErr == nil {
		runErr = fmt.Errorf("webkit: application exited with status %d", code)
	}
	return runErr
}
