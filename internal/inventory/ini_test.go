package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseINI_Scenario1(t *testing.T) {
	text := "[web]\nw1 ansible_host=10.0.0.1\nw2 ansible_host=10.0.0.2 ansible_port=2201\n[web:vars]\nansible_user=deploy\n"

	inv, err := ParseINI(text)
	require.NoError(t, err)
	require.Len(t, inv.Hosts, 2)

	w1, ok := inv.ByName("w1")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", w1.Address)
	assert.Equal(t, 22, w1.Port)
	assert.Equal(t, "deploy", w1.User)
	assert.Equal(t, "web", w1.Group())

	w2, ok := inv.ByName("w2")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.2", w2.Address)
	assert.Equal(t, 2201, w2.Port)
	assert.Equal(t, "deploy", w2.User)
}

func TestParseINI_HostVarsOverrideGroupVars(t *testing.T) {
	text := "[web]\nw1 ansible_user=alice\n[web:vars]\nansible_user=deploy\n"
	inv, err := ParseINI(text)
	require.NoError(t, err)

	w1, _ := inv.ByName("w1")
	assert.Equal(t, "alice", w1.User, "host-scope var must win over group var")
}

func TestParseINI_ChildrenTransitiveMembership(t *testing.T) {
	text := "[web]\nw1\nw2\n[db]\nd1\n[datacenter:children]\nweb\ndb\n"
	inv, err := ParseINI(text)
	require.NoError(t, err)

	members, ok := inv.HostsInGroup("datacenter")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"w1", "w2", "d1"}, members)
}

func TestParseINI_ChildrenCycleIsSilentNoOp(t *testing.T) {
	text := "[a:children]\nb\n[b:children]\na\n"
	inv, err := ParseINI(text)
	require.NoError(t, err)

	members, ok := inv.HostsInGroup("a")
	require.True(t, ok)
	assert.Empty(t, members)
}

func TestParseINI_Deterministic(t *testing.T) {
	text := "[web]\nw1 ansible_host=10.0.0.1\nw2 ansible_host=10.0.0.2\n"
	inv1, err1 := ParseINI(text)
	inv2, err2 := ParseINI(text)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, inv1.Hosts, inv2.Hosts)
}

func TestParseINI_MalformedSectionHeader(t *testing.T) {
	_, err := ParseINI("[web\nw1\n")
	assert.Error(t, err)
}

func TestParseINI_CommentsAndBlankLinesSkipped(t *testing.T) {
	text := "; comment\n# another comment\n\n[web]\nw1 ansible_host=10.0.0.1\n"
	inv, err := ParseINI(text)
	require.NoError(t, err)
	assert.Len(t, inv.Hosts, 1)
}

func TestParseINI_DefaultsAddressToHostname(t *testing.T) {
	inv, err := ParseINI("[web]\nweb1\n")
	require.NoError(t, err)
	w, _ := inv.ByName("web1")
	assert.Equal(t, "web1", w.Address)
	assert.Equal(t, 22, w.Port)
}
