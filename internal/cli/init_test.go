package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/quorum/internal/constants"
)

func newInitTestCmd() *cobra.Command {
	root := &cobra.Command{Use: "quorum", SilenceUsage: true, SilenceErrors: true}
	AddInitCommand(root)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root
}

func TestInitCommand(t *testing.T) {
	t.Run("writes a parseable starter config", func(t *testing.T) {
		t.Chdir(t.TempDir())

		root := newInitTestCmd()
		root.SetArgs([]string{"init"})
		require.NoError(t, root.Execute())

		data, err := os.ReadFile(filepath.Join(constants.QuorumHome, constants.ConfigFileName))
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal(data, &doc))
		assert.Contains(t, doc, "timeout")
		assert.Contains(t, doc, "output_dir")
		assert.Contains(t, doc, "providers")
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Chdir(t.TempDir())

		root := newInitTestCmd()
		root.SetArgs([]string{"init"})
		require.NoError(t, root.Execute())

		root = newInitTestCmd()
		root.SetArgs([]string{"init"})
		assert.Error(t, root.Execute())

		root = newInitTestCmd()
		root.SetArgs([]string{"init", "--force"})
		assert.NoError(t, root.Execute())
	})
}
