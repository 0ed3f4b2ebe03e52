package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/ansimon/internal/config"
	"github.com/rileyhilliard/ansimon/internal/errors"
	"github.com/rileyhilliard/ansimon/internal/inventory"
	"github.com/rileyhilliard/ansimon/internal/logger"
	"github.com/rileyhilliard/ansimon/internal/model"
	"github.com/rileyhilliard/ansimon/internal/poller"
	"github.com/rileyhilliard/ansimon/internal/sshexec"
	"github.com/rileyhilliard/ansimon/internal/tui"
)

func runRoot(cmd *cobra.Command, args []string) error {
	defaults, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(&defaults)

	inv, err := inventory.Load(inventoryPath)
	if err != nil {
		return err
	}

	hosts, err := selectHosts(inv, limitExpr)
	if err != nil {
		return err
	}

	if keyFlag != "" {
		if err := sshexec.ValidateKey(keyFlag); err != nil {
			return err
		}
	}

	table := model.New(hosts)
	log := logger.Default()
	p := poller.New(table, sshexec.Run, optionsResolver(defaults), defaults.Interval, defaults.Forks, defaults.ProbeTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	var interrupted atomic.Bool
	go func() {
		<-sigChan
		interrupted.Store(true)
		cancel()
	}()

	go p.Run(ctx)

	if !isInteractive() {
		<-ctx.Done()
		fmt.Print(tui.RenderSnapshot(table))
		if interrupted.Load() {
			return errors.NewExitError(130)
		}
		return nil
	}

	program := tea.NewProgram(tui.New(table, p), tea.WithAltScreen())
	_, runErr := program.Run()
	cancel()
	log.Debug("poller stopped")

	if interrupted.Load() {
		return errors.NewExitError(130)
	}
	return runErr
}

// isInteractive mirrors the teacher's color/prompt guard: both ends of the
// pipe need to be a terminal before the alt-screen program makes sense.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func applyFlagOverrides(d *config.Defaults) {
	if forksFlag > 0 {
		d.Forks = forksFlag
	}
	if intervalSecs > 0 {
		d.Interval = time.Duration(intervalSecs) * time.Second
		if !d.ProbeTimeoutExplicit {
			d.ProbeTimeout = config.DeriveProbeTimeout(d.Interval)
		}
	}
}

// optionsResolver folds ~/.ssh/config defaults under the inventory's
// per-host values, which are in turn overridden by the -u/-k/-p flags
// (§4.3): flags win for every selected host, not just ones missing a field.
// The inventory parsers always set a port (22 by default), so a Port from
// ~/.ssh/config is never used; only User and IdentityFile fill gaps.
func optionsResolver(d config.Defaults) poller.OptionsFor {
	return func(h inventory.Host) sshexec.Options {
		sshDefaults := sshexec.ResolveDefaults(h.Name)

		user := h.User
		if user == "" {
			user = sshDefaults.User
		}
		if userFlag != "" {
			user = userFlag
		}

		key := h.KeyPath
		if key == "" {
			key = sshDefaults.KeyPath
		}
		if keyFlag != "" {
			key = keyFlag
		}

		port := h.Port
		if port == 0 {
			port = sshDefaults.Port
		}
		if portFlag != 0 {
			port = portFlag
		}

		return sshexec.Options{
			Host:                  h.Address,
			Port:                  port,
			User:                  user,
			KeyPath:               key,
			ConnectTimeout:        d.ProbeTimeout,
			StrictHostKeyChecking: d.StrictHostKeyChecking,
		}
	}
}
