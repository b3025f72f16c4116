/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/internal/iofs"
	"github.com/gnames/gnmatch/internal/ioindex"
	"github.com/gnames/gnmatch/internal/iostore"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/spf13/cobra"
)

// getJoinCmd returns the join command.
func getJoinCmd() *cobra.Command {
	joinCmd := &cobra.Command{
		Use:   "join",
		Short: "Map identifiers of datasets to the main index",
		Long: `Build join indexes for datasets described in datasets.yaml.

Every usage of a dataset SFGA archive is matched strictly against the main
index. Matched identifiers let 'gnmatch match' resolve queries by
taxonID, taxonConceptID or scientificNameID of that dataset.

Datasets are configured in: ~/.config/gnmatch/datasets.yaml
The main index has to exist, run 'gnmatch index' first.

Examples:
  # Join all datasets
  gnmatch join

  # Join WoRMS and IPNI only
  gnmatch join --datasets 2011,2144`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runJoin(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	datasetsFlag(joinCmd, "dataset keys to join (empty = all)")
	jobsFlag(joinCmd)
	batchSizeFlag(joinCmd)

	return joinCmd
}

func runJoin(cmd *cobra.Command) error {
	ctx := context.Background()
	cfg.Update(changedOptions(cmd))

	dss, err := iofs.LoadDatasets(config.DatasetsFilePath(cfg.HomeDir))
	if err != nil {
		return err
	}
	if dss, err = iofs.FilterDatasets(dss, cfg.DatasetKeys); err != nil {
		return err
	}
	if len(dss) == 0 {
		gn.Warn("No datasets found in <em>%s</em>",
			config.DatasetsFilePath(cfg.HomeDir))
		return nil
	}

	st, err := iostore.Open(config.StoreDir(cfg.HomeDir))
	if err != nil {
		return err
	}
	defer st.Close()

	return ioindex.New(cfg, st).Join(ctx, dss)
}
