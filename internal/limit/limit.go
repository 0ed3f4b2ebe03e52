// Package limit evaluates Ansible-style "--limit" expressions against a
// parsed inventory (§4.2): comma- or colon-separated inclusion/exclusion
// terms, with glob support and exclusion always winning on conflict.
package limit

import (
	"regexp"
	"strings"

	"github.com/rileyhilliard/ansimon/internal/inventory"
)

// Match resolves expr against inv and returns the selected hosts in
// inventory order. An empty or all-whitespace expr selects every host.
func Match(expr string, inv *inventory.Inventory) []inventory.Host {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return inv.Hosts
	}

	var includes, excludes []term
	for _, raw := range splitTerms(expr) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "!") || strings.HasPrefix(raw, "~") {
			excludes = append(excludes, newTerm(raw[1:]))
		} else {
			includes = append(includes, newTerm(raw))
		}
	}

	var result []inventory.Host
	for _, h := range inv.Hosts {
		if !anyMatches(includes, h, inv) {
			continue
		}
		if anyMatches(excludes, h, inv) {
			continue // exclusion always wins
		}
		result = append(result, h)
	}
	return result
}

func splitTerms(expr string) []string {
	return strings.FieldsFunc(expr, func(r rune) bool {
		return r == ',' || r == ':'
	})
}

type term struct {
	raw    string
	isGlob bool
	re     *regexp.Regexp
}

func newTerm(raw string) term {
	t := term{raw: raw}
	if strings.ContainsAny(raw, "*?[") {
		t.isGlob = true
		t.re = globToRegexp(raw)
	}
	return t
}

func (t term) matches(name string) bool {
	if t.isGlob {
		return t.re.MatchString(name)
	}
	return t.raw == name
}

// anyMatches implements §4.2(a)-(c): a term matches a host when it equals
// the host name, equals a group the host belongs to, or (when the term is a
// glob) matches the host name or any of the host's groups.
func anyMatches(terms []term, h inventory.Host, inv *inventory.Inventory) bool {
	for _, t := range terms {
		if t.matches(h.Name) {
			return true
		}
		if !t.isGlob {
			if members, ok := inv.HostsInGroup(t.raw); ok {
				for _, m := range members {
					if m == h.Name {
						return true
					}
				}
			}
			continue
		}
		for _, g := range h.Groups {
			if t.matches(g) {
				return true
			}
		}
	}
	return false
}

// globToRegexp converts an Ansible/shell-style glob (*, ?, [...]) into an
// anchored regexp.
func globToRegexp(glob string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			j := i + 1
			for j < len(glob) && glob[j] != ']' {
				j++
			}
			if j < len(glob) {
				b.WriteString(glob[i : j+1])
				i = j
			} else {
				b.WriteString(regexp.QuoteMeta(string(c)))
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}
