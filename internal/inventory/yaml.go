package inventory

import (
	"fmt"

	"github.com/rileyhilliard/ansimon/internal/errors"
	"gopkg.in/yaml.v3"
)

// ParseYAML parses an Ansible-compatible YAML inventory rooted at "all",
// with hosts/children/vars at any level (§4.1). yaml.Node is used instead of
// a plain map so mapping key order — which drives "first-seen" group and
// host discovery order — survives decoding.
func ParseYAML(text string) (*Inventory, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "invalid YAML inventory", "")
	}
	if len(doc.Content) == 0 {
		return nil, errors.New(errors.ErrConfig, "empty inventory document", "")
	}
	root := doc.Content[0]

	allNode, err := mappingValue(root, "all")
	if err != nil || allNode == nil {
		return nil, errors.New(errors.ErrConfig, "YAML inventory must have a top-level 'all' key", "")
	}

	p := &yamlParser{
		hosts:        map[string]*Host{},
		hostOrder:    []string{},
		membersOf:    map[string][]string{},
		groupOrder:   []string{},
		seenGroup:    map[string]bool{},
	}
	if err := p.walkGroup("all", allNode, map[string]string{}, map[string]bool{}); err != nil {
		return nil, err
	}

	hosts := make([]Host, 0, len(p.hostOrder))
	for _, name := range p.hostOrder {
		hosts = append(hosts, *p.hosts[name])
	}
	byGroup := map[string][]string{}
	for g, members := range p.membersOf {
		byGroup[g] = members
	}
	return finalize(hosts, byGroup, p.groupOrder), nil
}

type yamlParser struct {
	hosts      map[string]*Host
	hostOrder  []string
	membersOf  map[string][]string
	groupOrder []string
	seenGroup  map[string]bool
}

func (p *yamlParser) walkGroup(name string, node *yaml.Node, inherited map[string]string, visiting map[string]bool) error {
	if visiting[name] {
		return nil // cycle: silent no-op per §9
	}
	visiting[name] = true
	defer delete(visiting, name)

	if !p.seenGroup[name] {
		p.seenGroup[name] = true
		p.groupOrder = append(p.groupOrder, name)
	}

	vars := map[string]string{}
	for k, v := range inherited {
		vars[k] = v
	}
	if varsNode, _ := mappingValue(node, "vars"); varsNode != nil {
		kv, err := scalarMapping(varsNode)
		if err != nil {
			return err
		}
		for k, v := range kv {
			vars[k] = v
		}
	}

	var members []string
	seenMember := map[string]bool{}
	addMember := func(n string) {
		if !seenMember[n] {
			seenMember[n] = true
			members = append(members, n)
		}
	}

	if hostsNode, _ := mappingValue(node, "hosts"); hostsNode != nil {
		if hostsNode.Kind != yaml.MappingNode {
			return errors.New(errors.ErrConfig, fmt.Sprintf("'hosts' under %q must be a mapping", name), "")
		}
		for i := 0; i+1 < len(hostsNode.Content); i += 2 {
			hostName := hostsNode.Content[i].Value
			hostVarsNode := hostsNode.Content[i+1]

			h, ok := p.hosts[hostName]
			if !ok {
				h = &Host{Name: hostName, Port: defaultPort}
				p.hosts[hostName] = h
				p.hostOrder = append(p.hostOrder, hostName)
			}
			applyVars(h, vars)
			if hostVarsNode != nil && hostVarsNode.Kind == yaml.MappingNode {
				hv, err := scalarMapping(hostVarsNode)
				if err != nil {
					return err
				}
				applyVars(h, hv)
			}
			if h.Address == "" {
				h.Address = hostName
			}
			alreadyInGroup := false
			for _, g := range h.Groups {
				if g == name {
					alreadyInGroup = true
					break
				}
			}
			if !alreadyInGroup {
				h.Groups = append(h.Groups, name)
			}
			addMember(hostName)
		}
	}

	if childrenNode, _ := mappingValue(node, "children"); childrenNode != nil {
		if childrenNode.Kind != yaml.MappingNode {
			return errors.New(errors.ErrConfig, fmt.Sprintf("'children' under %q must be a mapping", name), "")
		}
		for i := 0; i+1 < len(childrenNode.Content); i += 2 {
			childName := childrenNode.Content[i].Value
			childNode := childrenNode.Content[i+1]
			if err := p.walkGroup(childName, childNode, vars, visiting); err != nil {
				return err
			}
			for _, m := range p.membersOf[childName] {
				addMember(m)
			}
		}
	}

	p.membersOf[name] = members
	return nil
}

// mappingValue returns the value node for key within a mapping node, or nil
// if node is nil, not a mapping, or lacks the key.
func mappingValue(node *yaml.Node, key string) (*yaml.Node, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping, got kind %d", node.Kind)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1], nil
		}
	}
	return nil, nil
}

// scalarMapping decodes a mapping of scalar keys to scalar values into a
// string map, stringifying non-string scalars (ports are often unquoted
// ints in YAML inventories).
func scalarMapping(node *yaml.Node) (map[string]string, error) {
	out := map[string]string{}
	if node == nil {
		return out, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping of scalars")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i].Value
		v := node.Content[i+1]
		switch v.Kind {
		case yaml.ScalarNode:
			out[k] = v.Value
		default:
			// Non-scalar vars (lists/maps) aren't connection variables; the
			// key is kept, but with an empty value (a non-scalar node has no
			// Value of its own), and it is otherwise unused.
			out[k] = v.Value
		}
	}
	return out, nil
}
