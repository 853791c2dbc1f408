package branchtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshalYAML(t *testing.T) {
	data, err := MarshalYAML(buildStack(t))
	require.NoError(t, err)

	var decoded []yamlNode
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	require.Len(t, decoded, 1)
	master := decoded[0]
	assert.Equal(t, "master", master.Name)
	assert.True(t, master.Active)
	assert.Nil(t, master.Ahead)
	require.Len(t, master.Children, 2)

	testBranch := master.Children[0]
	assert.Equal(t, "test_branch", testBranch.Name)
	assert.Equal(t, "master", testBranch.Upstream)
	require.NotNil(t, testBranch.Ahead)
	assert.Equal(t, 2, *testBranch.Ahead)
	assert.Equal(t, "Add test branch", testBranch.Title)
	assert.Equal(t, []string{"fun_branch", "test_two"},
		[]string{testBranch.Children[0].Name, testBranch.Children[1].Name})

	assert.Equal(t, "test_zoo", master.Children[1].Name)
}

func TestMarshalYAML_OmitsEmptyFields(t *testing.T) {
	data, err := MarshalYAML(buildStack(t))
	require.NoError(t, err)

	assert.Contains(t, string(data), "- name: master\n  active: true\n  hash: aaaaaaa\n")
}
