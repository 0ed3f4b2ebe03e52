package inventory

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/ansimon/internal/errors"
)

type sectionKind int

const (
	sectionHosts sectionKind = iota
	sectionVars
	sectionChildren
)

type groupDef struct {
	kind         sectionKind
	base         string   // group name without :vars/:children suffix
	hostLines    []string // raw "name key=value ..." lines, in file order
	childLines   []string
	varLines     []string
	firstSection int // line number the [section] header appeared on, for ordering
}

// ParseINI parses an Ansible-compatible INI inventory. See §4.1 for the
// grammar: comment/blank lines, [group], [group:children], [group:vars]
// section headers, and "hostname key=value ..." host lines.
func ParseINI(text string) (*Inventory, error) {
	sections := []*groupDef{}
	byBase := map[string][]*groupDef{}

	// Hosts outside any section belong to the implicit "ungrouped" bucket;
	// Ansible calls this group "ungrouped", tracked like any other group.
	current := &groupDef{kind: sectionHosts, base: "ungrouped"}
	sections = append(sections, current)
	byBase["ungrouped"] = append(byBase["ungrouped"], current)

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, errors.New(errors.ErrConfig,
					fmt.Sprintf("malformed section header at line %d: %q", lineNo, line),
					"section headers must be [name], [name:children], or [name:vars]")
			}
			name := line[1 : len(line)-1]
			kind := sectionHosts
			base := name
			if idx := strings.LastIndex(name, ":"); idx >= 0 {
				suffix := name[idx+1:]
				switch suffix {
				case "children":
					kind = sectionChildren
					base = name[:idx]
				case "vars":
					kind = sectionVars
					base = name[:idx]
				default:
					return nil, errors.New(errors.ErrConfig,
						fmt.Sprintf("unknown section suffix %q at line %d", suffix, lineNo),
						"only :children and :vars suffixes are recognized")
				}
			}
			current = &groupDef{kind: kind, base: base, firstSection: lineNo}
			sections = append(sections, current)
			byBase[base] = append(byBase[base], current)
			continue
		}

		switch current.kind {
		case sectionHosts:
			current.hostLines = append(current.hostLines, line)
		case sectionChildren:
			current.childLines = append(current.childLines, line)
		case sectionVars:
			current.varLines = append(current.varLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "could not read inventory", "")
	}

	groupOrder := []string{}
	seenGroup := map[string]bool{}
	for _, s := range sections {
		if s.base == "ungrouped" && len(s.hostLines) == 0 {
			continue
		}
		if !seenGroup[s.base] {
			seenGroup[s.base] = true
			groupOrder = append(groupOrder, s.base)
		}
	}

	directHosts := map[string][]hostEntry{}  // group -> ordered host entries
	children := map[string][]string{}        // group -> child group names, in file order
	groupVars := map[string]map[string]string{}
	hostVars := map[string]map[string]string{} // host name -> inline vars (first wins per key)
	hostAppearOrder := []string{}
	seenHost := map[string]bool{}

	for _, s := range sections {
		switch s.kind {
		case sectionHosts:
			for _, line := range s.hostLines {
				name, vars, err := parseHostLine(line)
				if err != nil {
					return nil, err
				}
				directHosts[s.base] = append(directHosts[s.base], hostEntry{name: name})
				if !seenHost[name] {
					seenHost[name] = true
					hostAppearOrder = append(hostAppearOrder, name)
				}
				if hostVars[name] == nil {
					hostVars[name] = map[string]string{}
				}
				for k, v := range vars {
					if _, exists := hostVars[name][k]; !exists {
						hostVars[name][k] = v
					}
				}
			}
		case sectionChildren:
			for _, line := range s.childLines {
				name := strings.TrimSpace(line)
				if name != "" {
					children[s.base] = append(children[s.base], name)
				}
			}
		case sectionVars:
			if groupVars[s.base] == nil {
				groupVars[s.base] = map[string]string{}
			}
			for _, line := range s.varLines {
				k, v, err := parseVarLine(line)
				if err != nil {
					return nil, err
				}
				groupVars[s.base][k] = v
			}
		}
	}

	// members(group) = direct hosts ∪ members(child) for each child, cycles
	// ignored via visiting/visited per §9.
	membersOf := map[string][]string{}
	var resolve func(group string, visiting map[string]bool) []string
	resolve = func(group string, visiting map[string]bool) []string {
		if cached, ok := membersOf[group]; ok {
			return cached
		}
		if visiting[group] {
			return nil // cycle: silent no-op
		}
		visiting[group] = true

		seen := map[string]bool{}
		var ordered []string
		for _, h := range directHosts[group] {
			if !seen[h.name] {
				seen[h.name] = true
				ordered = append(ordered, h.name)
			}
		}
		for _, child := range children[group] {
			for _, h := range resolve(child, visiting) {
				if !seen[h] {
					seen[h] = true
					ordered = append(ordered, h)
				}
			}
		}
		membersOf[group] = ordered
		return ordered
	}
	for _, g := range groupOrder {
		resolve(g, map[string]bool{})
	}

	hosts := make([]Host, 0, len(hostAppearOrder))
	byGroupOut := map[string][]string{}
	for _, g := range groupOrder {
		byGroupOut[g] = membersOf[g]
	}

	for _, name := range hostAppearOrder {
		h := Host{Name: name, Port: defaultPort}
		var groups []string
		for _, g := range groupOrder {
			for _, m := range membersOf[g] {
				if m == name {
					groups = append(groups, g)
					break
				}
			}
		}
		h.Groups = groups

		// Apply group vars in declared order (later group wins on conflict),
		// then host's own inline vars always win.
		for _, g := range groups {
			applyVars(&h, groupVars[g])
		}
		applyVars(&h, hostVars[name])

		if h.Address == "" {
			h.Address = name
		}
		hosts = append(hosts, h)
	}

	return finalize(hosts, byGroupOut, groupOrder), nil
}

type hostEntry struct {
	name string
}

func parseHostLine(line string) (string, map[string]string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, errors.New(errors.ErrConfig, "empty host line", "")
	}
	name := fields[0]
	vars := map[string]string{}
	for _, f := range fields[1:] {
		k, v, err := parseVarLine(f)
		if err != nil {
			return "", nil, err
		}
		vars[k] = v
	}
	return name, vars, nil
}

func parseVarLine(s string) (string, string, error) {
	idx := strings.Index(s, "=")
	if idx < 0 {
		return "", "", errors.New(errors.ErrConfig,
			fmt.Sprintf("malformed key=value pair: %q", s), "")
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:]), nil
}

func applyVars(h *Host, vars map[string]string) {
	if v, ok := vars["ansible_host"]; ok && v != "" {
		h.Address = v
	}
	if v, ok := vars["ansible_port"]; ok && v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			h.Port = p
		}
	}
	if v, ok := vars["ansible_user"]; ok && v != "" {
		h.User = v
	}
	if v, ok := vars["ansible_ssh_private_key_file"]; ok && v != "" {
		h.KeyPath = v
	}
}
