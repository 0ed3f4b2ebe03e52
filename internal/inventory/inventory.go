// Package inventory parses Ansible-style INI and YAML inventory files into a
// normalized host list with per-host connection variables and group
// membership, per §4.1.
package inventory

// Host is identity and connection metadata resolved from the inventory.
type Host struct {
	Name    string
	Address string
	Port    int
	User    string
	KeyPath string
	// Groups preserves first-seen order; Groups[0] is the display group.
	Groups []string
}

// Group returns the display group: the first group the host was discovered
// in, or "" if the host belongs to no named group.
func (h Host) Group() string {
	if len(h.Groups) == 0 {
		return ""
	}
	return h.Groups[0]
}

// Inventory is the parsed, immutable result of loading one inventory file.
// Hosts preserves discovery order; HostsByGroup supports the Pattern
// Matcher's group-membership lookups.
type Inventory struct {
	Hosts        []Host
	hostsByName  map[string]int // index into Hosts
	hostsByGroup map[string][]string
	groupNames   []string // discovery order, for glob matching against group names
}

// ByName looks up a host by name.
func (inv *Inventory) ByName(name string) (Host, bool) {
	idx, ok := inv.hostsByName[name]
	if !ok {
		return Host{}, false
	}
	return inv.Hosts[idx], true
}

// HostsInGroup returns the host names that are members of group, including
// via child groups. Unknown group names return nil, false.
func (inv *Inventory) HostsInGroup(group string) ([]string, bool) {
	names, ok := inv.hostsByGroup[group]
	return names, ok
}

// GroupNames returns all known group names in discovery order.
func (inv *Inventory) GroupNames() []string {
	return inv.groupNames
}

const defaultPort = 22

// finalize builds the lookup indices after hosts and group memberships have
// been collected by a format-specific parser.
func finalize(hosts []Host, memberOf map[string][]string, groupOrder []string) *Inventory {
	byName := make(map[string]int, len(hosts))
	for i, h := range hosts {
		byName[h.Name] = i
	}
	return &Inventory{
		Hosts:        hosts,
		hostsByName:  byName,
		hostsByGroup: memberOf,
		groupNames:   groupOrder,
	}
}
