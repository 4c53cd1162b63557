package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		dumpJSON = false
	})

	require.NoError(t, rootCmd.Execute())

	return out.String()
}

func TestSchemaCommand(t *testing.T) {
	out := run(t, "schema")

	var doc map[string]any

	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "recipes", doc["table"])
	assert.NotEmpty(t, doc["attributes"])
	assert.NotEmpty(t, doc["relations"])
}

func TestConfigCommandJSON(t *testing.T) {
	out := run(t, "config", "--config", "../etc/", "--json")

	var doc map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "DB")
	assert.Contains(t, doc, "Webserver")
}

func TestConfigCommandTOML(t *testing.T) {
	out := run(t, "config", "--config", "../etc/")
	assert.Contains(t, out, "[webserver]")
}
