// Package sshexec is the Remote Command Set (§4.3): it builds the single
// delimiter-framed one-liner a poll runs, invokes the ssh binary as a
// subprocess to run it, and splits the subprocess's stdout back into named
// sections for internal/sample to parse.
package sshexec

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/ansimon/internal/errors"
	"github.com/rileyhilliard/ansimon/internal/sample"
)

// delimiterFor returns the fixed, improbable marker line printed before a
// section's output (§4.3).
func delimiterFor(section string) string {
	return "@@ANSIMON@@" + section + "@@"
}

var sectionCommand = map[string]string{
	sample.SectionStat:      "cat /proc/stat",
	sample.SectionMeminfo:   "cat /proc/meminfo",
	sample.SectionLoadavg:   "cat /proc/loadavg",
	sample.SectionUptime:    "cat /proc/uptime",
	sample.SectionNetDev:    "cat /proc/net/dev",
	sample.SectionSockstat:  "cat /proc/net/sockstat",
	sample.SectionDiskstats: "cat /proc/diskstats",
	sample.SectionDF:        "df -P /",
	sample.SectionNproc:     "nproc",
}

// BuildMetricsCommand returns the single shell one-liner executed over one
// SSH session, in the fixed section order §4.3 names.
func BuildMetricsCommand() string {
	var parts []string
	for _, section := range sample.Sections {
		parts = append(parts, fmt.Sprintf(`echo "%s"; %s`, delimiterFor(section), sectionCommand[section]))
	}
	return strings.Join(parts, "; ")
}

// ParseOutput splits one poll's stdout into named sections by the markers
// BuildMetricsCommand prints. A section absent from stdout simply doesn't
// appear in the returned map; internal/sample.ParseSections treats that as
// a parse failure.
func ParseOutput(stdout string) (map[string]string, error) {
	sections := map[string]string{}
	var current string
	var buf strings.Builder

	flush := func() {
		if current != "" {
			sections[current] = buf.String()
			buf.Reset()
		}
	}

	for _, line := range strings.Split(stdout, "\n") {
		if name, ok := sectionNameFromMarker(line); ok {
			flush()
			current = name
			continue
		}
		if current != "" {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	flush()

	if len(sections) == 0 {
		return nil, errors.New(errors.ErrParse, "no section markers found in ssh output", "")
	}
	return sections, nil
}

func sectionNameFromMarker(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	const prefix, suffix = "@@ANSIMON@@", "@@"
	if !strings.HasPrefix(trimmed, prefix) || !strings.HasSuffix(trimmed, suffix) {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(trimmed, prefix), suffix)
	if name == "" {
		return "", false
	}
	return name, true
}
