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
	"github.com/gnames/gnmatch/internal/ioindex"
	"github.com/gnames/gnmatch/internal/iostore"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/spf13/cobra"
)

// getIndexCmd returns the index command.
func getIndexCmd() *cobra.Command {
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Build the main index from an SFGA archive or GNverifier database",
		Long: `Build the main index of name usages.

The backbone comes either from an SFGA archive (a local file or URL of the
SQLite flavour of CoLDP) or from one data source of a GNverifier PostgreSQL
database. Taxa, synonyms and higher taxa are saved to the index store at
~/.cache/gnmatch/store and replace the previous main index.

Join indexes are built against the main index, rebuild them with
'gnmatch join' after the backbone changes.

Examples:
  # Index Catalogue of Life SFGA archive
  gnmatch index --sfga ~/Downloads/col.sqlite.zip

  # Index data source 11 (GBIF backbone) of a GNverifier database
  gnmatch index --db --data-source-id 11`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runIndex(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	indexCmd.Flags().StringP("sfga", "s", "",
		"path or URL of an SFGA archive")
	indexCmd.Flags().Bool("db", false,
		"read the backbone from the GNverifier database in config.yaml")
	indexCmd.Flags().IntP("data-source-id", "i", 0,
		"GNverifier data source of the backbone (default from config)")
	jobsFlag(indexCmd)
	indexCmd.MarkFlagsOneRequired("sfga", "db")
	indexCmd.MarkFlagsMutuallyExclusive("sfga", "db")

	return indexCmd
}

func runIndex(cmd *cobra.Command) error {
	ctx := context.Background()
	cfg.Update(changedOptions(cmd))

	st, err := iostore.Open(config.StoreDir(cfg.HomeDir))
	if err != nil {
		return err
	}
	defer st.Close()

	ix := ioindex.New(cfg, st)
	if useDB, _ := cmd.Flags().GetBool("db"); useDB {
		err = ix.IndexDatabase(ctx)
	} else {
		src, _ := cmd.Flags().GetString("sfga")
		err = ix.IndexSFGA(ctx, src)
	}
	if err != nil {
		return err
	}

	gn.Info(`Next steps:
	 - Run '<em>gnmatch join</em>' to map identifiers of datasets
	 - Run '<em>gnmatch match</em>' to match names`)
	return nil
}
