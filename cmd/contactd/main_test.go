package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate"}, names)
	require.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestMigrateRequiresPostgres(t *testing.T) {
	t.Setenv("CONTACTD_STORAGE_DRIVER", "memory")

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	err := root.Execute()
	assert.ErrorContains(t, err, "storage.driver=postgres")
}

func TestMigrateBuildsLoggerFromConfig(t *testing.T) {
	t.Setenv("CONTACTD_STORAGE_DRIVER", "postgres")
	t.Setenv("CONTACTD_LOG_LEVEL", "loud")

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	err := root.Execute()
	assert.ErrorContains(t, err, "log level")
}
