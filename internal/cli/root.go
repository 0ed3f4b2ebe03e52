// Package cli wires ansimon's single cobra command: flags, inventory
// loading, host selection, and handing the selected hosts to the poller
// and renderer (§6).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/ansimon/internal/errors"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// flags, set by cobra from the command line (§6).
var (
	inventoryPath string
	limitExpr     string
	userFlag      string
	keyFlag       string
	portFlag      int
	forksFlag     int
	intervalSecs  int
)

var rootCmd = &cobra.Command{
	Use:   "ansimon",
	Short: "Interactive terminal monitor for a fleet of Linux hosts over SSH",
	Long: `ansimon polls a fleet of Linux hosts over SSH and renders their CPU,
memory, disk, and network health in an interactive terminal table.

  ansimon -i inventory.ini
  ansimon -i hosts.yaml -l "web:!web-03"
  ansimon -i hosts.ini --interval 5 -f 20`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&inventoryPath, "inventory", "i", "", "inventory file (INI or YAML)")
	rootCmd.Flags().StringVarP(&limitExpr, "limit", "l", "", "host/group pattern, e.g. \"web:!web-03\"")
	rootCmd.Flags().StringVarP(&userFlag, "user", "u", "", "SSH user override for every selected host")
	rootCmd.Flags().StringVarP(&keyFlag, "key", "k", "", "SSH private key path override")
	rootCmd.Flags().IntVarP(&portFlag, "port", "p", 0, "SSH port override")
	rootCmd.Flags().IntVarP(&forksFlag, "forks", "f", 0, "max concurrent SSH probes (default from config, 10)")
	rootCmd.Flags().IntVar(&intervalSecs, "interval", 0, "poll interval in seconds (default from config, 10)")

	_ = rootCmd.MarkFlagRequired("inventory")
}

// SetVersionInfo records build-time version metadata for the version
// subcommand; called from main with values set via -ldflags.
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

// Execute runs the root command and translates its result into a process
// exit code, per §6's "0 normal quit, 2 inventory error, 3 no hosts
// matched, 130 interrupted by signal".
func Execute() {
	code := run()
	if code != 0 {
		os.Exit(code)
	}
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := errors.GetExitCode(err); ok {
			return code
		}
		fmt.Fprintln(os.Stderr, renderErr(err))
		return exitCodeForErr(err)
	}
	return 0
}

// renderErr prints a structured *errors.Error the same way the error
// already formats itself; anything else gets a plain "✗ message" so the
// failure texture matches regardless of source.
func renderErr(err error) string {
	var ansimonErr *errors.Error
	if e, ok := err.(*errors.Error); ok {
		ansimonErr = e
	}
	if ansimonErr != nil {
		return ansimonErr.Error()
	}
	return errors.Wrap(err, err.Error()).Error()
}

// exitCodeForErr maps an error's bucket to §6's exit codes. Anything not a
// recognized selection failure is a config/startup error (exit 2); this
// function is only reached for failures before the TUI initializes, since
// per-host Transport/Remote/Parse failures never escape to here (§7).
func exitCodeForErr(err error) int {
	if errors.IsCode(err, errors.ErrSelection) {
		return 3
	}
	return 2
}
