package cli

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/rileyhilliard/ansimon/internal/errors"
	"github.com/rileyhilliard/ansimon/internal/inventory"
	"github.com/rileyhilliard/ansimon/internal/limit"
)

// selectHosts applies -l/--limit (§4.2) when given, otherwise offers an
// interactive group picker when the inventory has more than one top-level
// group and we're attached to a terminal, falling through to "all hosts"
// otherwise. A selection that matches nothing is ErrSelection (exit 3).
func selectHosts(inv *inventory.Inventory, expr string) ([]inventory.Host, error) {
	if expr == "" {
		expr = maybePickGroups(inv)
	}

	hosts := limit.Match(expr, inv)
	if len(hosts) == 0 {
		return nil, errors.New(errors.ErrSelection,
			"limit expression matched zero hosts: "+expr,
			"check --limit against the inventory's group and host names")
	}
	return hosts, nil
}

// maybePickGroups offers a huh multi-select over the inventory's top-level
// groups, grounded on the teacher's interactive picker pattern (internal/cli
// host.go). Skipped when there's nothing to choose between or no terminal
// to draw one on; an empty return means "all hosts".
func maybePickGroups(inv *inventory.Inventory) string {
	groups := inv.GroupNames()
	if len(groups) < 2 {
		return ""
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ""
	}

	options := make([]huh.Option[string], 0, len(groups))
	for _, g := range groups {
		options = append(options, huh.NewOption(g, g))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select groups to monitor (space to toggle, enter to confirm, empty = all hosts)").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil || len(selected) == 0 {
		return ""
	}
	return joinTerms(selected)
}

func joinTerms(terms []string) string {
	out := terms[0]
	for _, t := range terms[1:] {
		out += ":" + t
	}
	return out
}
