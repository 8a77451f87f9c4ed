// Command console runs one console request and prints its body.
//
// Configuration sources, highest priority first:
//
//  1. flags (--log-level, --method, --metrics-file)
//  2. CONSOLE_ environment variables (CONSOLE_APP_PATH, CONSOLE_LOG_FILE_PATH, ...)
//  3. the file given by --config or CONSOLE_CONFIG_FILE
//  4. console.yaml in the working directory or ./configs
//
// Examples:
//
//	console /en/dashboard
//	console --method POST "/en/costobjects/create?name=Marketing"
//	console routes
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dmitrymomot/console"
	"github.com/dmitrymomot/console/modules/costobject"
	"github.com/dmitrymomot/console/modules/dashboard"
	"github.com/dmitrymomot/console/modules/system"
	"github.com/dmitrymomot/console/pkg/config"
)

// exitError carries a non-zero exit code after the body was written.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "console [path]",
		Short: "Run a console request",
		Long: `Run one console request through the bootstrap pipeline and print the body.

The path is relative to app.path and may carry a language prefix and a query:
  console /en/dashboard
  console /de/costobjects
  console "/en/costobjects/create?name=Marketing"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			out := console.Run(cmd.Context(), args,
				console.WithStderrLogger(),
				console.WithConfigLoader(func() (*config.Config, error) {
					return loadConfig(cfgFile, flags)
				}),
				console.WithOutput(cmd.OutOrStdout()),
				console.WithModules(dashboard.New(), costobject.New(), system.New()),
			)
			if out.ExitCode != 0 {
				return &exitError{code: out.ExitCode}
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is console.yaml, can also use CONSOLE_CONFIG_FILE env var)")
	pf.StringP("log-level", "l", "", "log level (debug, info, warn, error, critical)")
	pf.StringP("method", "X", "", "request method (default GET)")
	pf.String("metrics-file", "", "write Prometheus metrics to this file")

	root.AddCommand(newRoutesCmd(&cfgFile), newVersionCmd())
	return root
}

// loadConfig binds the persistent flags over file and environment values.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*config.Config, error) {
	opts := []config.Option{
		config.WithSearchPath(".", "configs"),
		config.WithFlag("log.level", changed(flags, "log-level")),
		config.WithFlag("app.method", changed(flags, "method")),
		config.WithFlag("metrics.file", changed(flags, "metrics-file")),
	}
	if cfgFile != "" {
		opts = append(opts, config.WithFile(cfgFile))
	}
	return config.Load(opts...)
}

// changed returns the flag only when it was set on the command line.
func changed(flags *pflag.FlagSet, name string) *pflag.Flag {
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	return f
}
