package limit

import (
	"testing"

	"github.com/rileyhilliard/ansimon/internal/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(hosts []inventory.Host) []string {
	out := make([]string, len(hosts))
	for i, h := range hosts {
		out[i] = h.Name
	}
	return out
}

func TestMatch_Scenario2_Exclusion(t *testing.T) {
	inv, err := inventory.ParseINI("[web]\nw1\nw2\nw3\n[db]\nd1\n")
	require.NoError(t, err)

	got := Match("web,!w2", inv)
	assert.Equal(t, []string{"w1", "w3"}, names(got))
}

func TestMatch_Scenario3_GlobAcrossGroups(t *testing.T) {
	inv, err := inventory.ParseINI("[all]\napi.prod\napi.dev\nweb.prod\n")
	require.NoError(t, err)

	got := Match("*.prod", inv)
	assert.Equal(t, []string{"api.prod", "web.prod"}, names(got))
}

func TestMatch_EmptyExprSelectsAll(t *testing.T) {
	inv, err := inventory.ParseINI("[web]\nw1\nw2\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"w1", "w2"}, names(Match("", inv)))
	assert.Equal(t, []string{"w1", "w2"}, names(Match("   ", inv)))
}

func TestMatch_ExclusionAlwaysWinsOnConflict(t *testing.T) {
	inv, err := inventory.ParseINI("[web]\nw1\nw2\n")
	require.NoError(t, err)

	// w1 is both explicitly included and explicitly excluded.
	got := Match("w1,!w1", inv)
	assert.Empty(t, got)
}

func TestMatch_HostNameDirect(t *testing.T) {
	inv, err := inventory.ParseINI("[web]\nw1\nw2\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"w1"}, names(Match("w1", inv)))
}

func TestMatch_UnmatchedGroupSelectsNothing(t *testing.T) {
	inv, err := inventory.ParseINI("[web]\nw1\n")
	require.NoError(t, err)

	assert.Empty(t, Match("nonexistent", inv))
}
