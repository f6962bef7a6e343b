package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTechnology(t *testing.T) {
	cases := map[string]Technology{
		"PYTHON":    TechnologyPython,
		"python":    TechnologyPython,
		"  Docker ": TechnologyDocker,
		"sql":       TechnologySQL,
	}
	for in, want := range cases {
		got, err := ParseTechnology(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
}

func TestParseTechnologyRejectsUnknown(t *testing.T) {
	_, err := ParseTechnology("rust")
	require.Error(t, err)

	var invalid *InvalidTechnologyError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "rust", invalid.Value)
	assert.Equal(t,
		"invalid technology value 'rust'. Allowed values: [JAVA, PYTHON, BASH, SQL, GIT, DOCKER, COMMAND, TEXT]",
		err.Error())
}

func TestTechnologiesIsACopy(t *testing.T) {
	list := Technologies()
	list[0] = "MUTATED"
	assert.Equal(t, TechnologyJava, Technologies()[0])
	assert.False(t, Technology("").Valid())
}

func TestCommandOwnedBy(t *testing.T) {
	owner := &User{ID: 1}
	other := &User{ID: 2}
	cmd := &Command{ID: 10, UserID: 1}

	assert.True(t, cmd.OwnedBy(owner))
	assert.False(t, cmd.OwnedBy(other))
	assert.False(t, cmd.OwnedBy(nil))
	assert.False(t, (*Command)(nil).OwnedBy(owner))
}
