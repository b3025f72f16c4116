package cmd

import (
	"bytes"
	"testing"

	"github.com/gnames/gnmatch/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRootCmd(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "gnmatch", cmd.Use)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"index", "join", "match"})
}

func TestGetRootCmdVersion(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		t.Run(flag, func(t *testing.T) {
			cmd := getRootCmd()
			cmd.Version = "version: v1.2.3\nbuild:   abc123"

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{flag})
			require.NoError(t, cmd.Execute())

			assert.Contains(t, buf.String(), "v1.2.3")
			assert.Contains(t, buf.String(), "abc123")
		})
	}
}

func TestGetRootCmdHelp(t *testing.T) {
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	help := buf.String()
	assert.Contains(t, help, "GNmatch")
	assert.Contains(t, help, "GNMATCH_")
	assert.Contains(t, help, "Available Commands")
}

func TestSubcommandFlags(t *testing.T) {
	tests := []struct {
		msg   string
		cmd   *cobra.Command
		flags []string
	}{
		{"index", getIndexCmd(), []string{"sfga", "db", "data-source-id", "jobs"}},
		{"join", getJoinCmd(), []string{"datasets", "jobs", "batch-size"}},
		{"match", getMatchCmd(), []string{"format", "strict", "verbose",
			"max-candidates", "rank", "kingdom", "family", "datasets", "jobs",
			"batch-size"}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert.NotNil(t, v.cmd.RunE)
			for _, f := range v.flags {
				assert.NotNil(t, v.cmd.Flags().Lookup(f), f)
			}
		})
	}
}

func TestChangedOptions(t *testing.T) {
	cmd := getMatchCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"-f", "tsv", "--strict", "-j", "3", "-d", "2011,2144",
	}))

	opts := changedOptions(cmd)
	assert.Len(t, opts, 4)

	c := config.New()
	c.Update(opts)
	assert.Equal(t, "tsv", c.Format)
	assert.True(t, c.Match.Strict)
	assert.False(t, c.Match.Verbose)
	assert.Equal(t, 3, c.JobsNumber)
	assert.Equal(t, []string{"2011", "2144"}, c.DatasetKeys)
	assert.Equal(t, 10_000, c.BatchSize)
}

func TestSingleQuery(t *testing.T) {
	cmd := getMatchCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--rank", "genus", "-k", "Animalia",
	}))

	q := singleQuery(cmd, "Oenanthe")
	assert.Equal(t, "Oenanthe", q.ScientificName)
	assert.Equal(t, "GENUS", q.Rank.String())
	assert.Equal(t, "Animalia", q.Classification.Kingdom)
	assert.Empty(t, q.Classification.Family)
}
