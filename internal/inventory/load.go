package inventory

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/ansimon/internal/errors"
)

// Load reads and parses the inventory file at path, selecting INI or YAML
// by extension, falling back to a content sniff when the extension is
// absent or ambiguous (§4.1).
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"could not read inventory file "+path,
			"check the path passed to --inventory")
	}
	text := string(data)

	if isYAML(path, text) {
		return ParseYAML(text)
	}
	return ParseINI(text)
}

func isYAML(path, text string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yml" || ext == ".yaml" {
		return true
	}
	if ext == ".ini" {
		return false
	}
	return sniffYAML(text)
}

// sniffYAML inspects the first non-comment, non-blank line: YAML inventories
// start with "all:" or any "key:" mapping entry; INI inventories start with
// a "[section]" header or a bare host line.
func sniffYAML(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") {
			return false
		}
		if trimmed == "all:" {
			return true
		}
		if idx := strings.Index(trimmed, ":"); idx > 0 && !strings.Contains(trimmed[:idx], " ") {
			return true
		}
		return false
	}
	return false
}
