package cmd

import (
	"maps"
	"slices"

	"github.com/gnames/gnmatch/pkg/config"
	"github.com/spf13/cobra"
)

// funcFlag reads a flag and converts it to a config option.
type funcFlag func(cmd *cobra.Command, name string) config.Option

var flagOptions = map[string]funcFlag{
	"jobs": func(cmd *cobra.Command, name string) config.Option {
		i, _ := cmd.Flags().GetInt(name)
		return config.OptJobsNumber(i)
	},
	"batch-size": func(cmd *cobra.Command, name string) config.Option {
		i, _ := cmd.Flags().GetInt(name)
		return config.OptBatchSize(i)
	},
	"data-source-id": func(cmd *cobra.Command, name string) config.Option {
		i, _ := cmd.Flags().GetInt(name)
		return config.OptDatabaseDataSourceID(i)
	},
	"max-candidates": func(cmd *cobra.Command, name string) config.Option {
		i, _ := cmd.Flags().GetInt(name)
		return config.OptMatchMaxCandidates(i)
	},
	"format": func(cmd *cobra.Command, name string) config.Option {
		s, _ := cmd.Flags().GetString(name)
		return config.OptFormat(s)
	},
	"strict": func(cmd *cobra.Command, name string) config.Option {
		b, _ := cmd.Flags().GetBool(name)
		return config.OptMatchStrict(b)
	},
	"verbose": func(cmd *cobra.Command, name string) config.Option {
		b, _ := cmd.Flags().GetBool(name)
		return config.OptMatchVerbose(b)
	},
	"datasets": func(cmd *cobra.Command, name string) config.Option {
		ss, _ := cmd.Flags().GetStringSlice(name)
		return config.OptDatasetKeys(ss)
	},
}

// changedOptions returns options for flags that were set on the command
// line. Unchanged flags keep values from config.yaml and environment.
func changedOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	for _, name := range slices.Sorted(maps.Keys(flagOptions)) {
		if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
			continue
		}
		res = append(res, flagOptions[name](cmd, name))
	}
	return res
}

func jobsFlag(cmd *cobra.Command) {
	cmd.Flags().IntP("jobs", "j", 0,
		"number of concurrent workers (default from config)")
}

func batchSizeFlag(cmd *cobra.Command) {
	cmd.Flags().IntP("batch-size", "b", 0,
		"records given to a worker at once (default from config)")
}

func datasetsFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringSliceP("datasets", "d", nil, usage)
}
