// Package cmd provides Cobra CLI commands for formview.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/formview/internal/cli"
	"github.com/bnema/formview/internal/domain/build"
	"github.com/bnema/formview/internal/domain/entity"
)

var (
	app        *cli.App
	configFile string
	logLevel   string
	rootCmd    = &cobra.Command{
		Use:   "formview",
		Short: "Render Form.io forms in a native view",
		Long: `formview embeds the Form.io renderer in a WebKitGTK window, a headless
Chrome tab or an in-process sandbox and bridges its events to the host.

Use 'formview show' to open a form in a window, 'formview simulate' to
script a session and print every bridge event, and 'formview config' to
manage the configuration file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}
			if cmd.HasParent() && cmd.Parent() == configCmd {
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{ConfigFile: configFile, LogLevel: logLevel})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/formview/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information reported by --version.
func SetBuildInfo(info build.Info) {
	rootCmd.Version = info.String()
}

// loadDescriptor reads the schema and prefill files of a command.
func loadDescriptor(schemaPath, dataPath string, readOnly bool) (entity.FormDescriptor, error) {
	if schemaPath == "" {
		return entity.FormDescriptor{}, fmt.Errorf("--schema is required")
	}
	schema, err := cli.LoadFormFile(schemaPath)
	if err != nil {
		return entity.FormDescriptor{}, err
	}

	opts := []entity.DescriptorOption{entity.WithReadOnly(readOnly)}
	if dataPath != "" {
		data, err := cli.LoadFormFile(dataPath)
		if err != nil {
			return entity.FormDescriptor{}, err
		}
		opts = append(opts, entity.WithPrefill(data))
	}

	desc, err := entity.NewFormDescriptor(schema, opts...)
	if err != nil {
		return entity.FormDescriptor{}, fmt.Errorf("%s: %w", schemaPath, err)
	}
	return desc, nil
}
