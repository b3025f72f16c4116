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
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/internal/ioindex"
	"github.com/gnames/gnmatch/internal/iomatch"
	"github.com/gnames/gnmatch/internal/iostore"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/matcher"
	"github.com/gnames/gnsys"
	"github.com/spf13/cobra"
)

// getMatchCmd returns the match command.
func getMatchCmd() *cobra.Command {
	matchCmd := &cobra.Command{
		Use:   "match [name | file | -]",
		Short: "Match scientific names against the main index",
		Long: `Match scientific names against the main index.

The argument is a scientific name, a path to a file or '-' for standard
input. Several arguments are matched as a list of names. Without arguments
names are read from standard input.

A file has either one name per line, or it is a TSV file with a header.
Recognized columns are id, usageKey, taxonID, taxonConceptID,
scientificNameID, scientificName, authorship, rank, kingdom, phylum,
class, order, family, genus, subgenus, species and excludeKeys.

Output formats are compact (JSON lines), pretty (indented JSON), csv and
tsv.

Examples:
  # Match one name
  gnmatch match "Abies alba Mill."

  # Match a genus in animals
  gnmatch match Oenanthe --rank genus --kingdom Animalia

  # Match a file and save results as TSV
  gnmatch match names.tsv -f tsv > results.tsv

  # Use only the WoRMS join index for identifiers
  gnmatch match names.tsv -d 2011`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMatch(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	matchCmd.Flags().StringP("format", "f", "compact",
		"output format: compact, pretty, csv, tsv")
	matchCmd.Flags().BoolP("strict", "s", false,
		"disable fuzzy matching and higher rank fallbacks")
	matchCmd.Flags().BoolP("verbose", "v", false,
		"add alternatives and scoring notes to results")
	matchCmd.Flags().IntP("max-candidates", "m", 0,
		"index hits kept for every name (default from config)")
	matchCmd.Flags().StringP("rank", "r", "", "rank of a single name")
	matchCmd.Flags().StringP("kingdom", "k", "", "kingdom of a single name")
	matchCmd.Flags().String("family", "", "family of a single name")
	datasetsFlag(matchCmd, "join indexes used for identifiers (empty = all)")
	jobsFlag(matchCmd)
	batchSizeFlag(matchCmd)

	return matchCmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg.Update(changedOptions(cmd))

	m, err := loadMatcher(ctx)
	if err != nil {
		return err
	}
	defer m.Close()

	b := iomatch.New(m, cfg)
	out := cmd.OutOrStdout()

	var r io.Reader
	switch {
	case len(args) == 0 || (len(args) == 1 && args[0] == "-"):
		r = os.Stdin
	case len(args) == 1 && gnsys.IsFile(args[0]):
		f, err := os.Open(args[0])
		if err != nil {
			return iomatch.MatchInputError(0, err)
		}
		defer f.Close()
		r = f
	case len(args) == 1:
		q := singleQuery(cmd, args[0])
		return b.Write(out, []iomatch.Output{b.MatchQuery(q)})
	default:
		r = strings.NewReader(strings.Join(args, "\n"))
	}

	stats, err := b.Run(ctx, r, out)
	if err != nil {
		return err
	}
	// results own stdout, the summary goes to the log
	slog.Info("Names matched",
		"run", stats.Run,
		"matched", humanize.Comma(int64(stats.Matched)),
		"total", humanize.Comma(int64(stats.Total)),
	)
	return nil
}

// loadMatcher restores indexes from the store. The store is closed right
// away, the indexes live in memory.
func loadMatcher(ctx context.Context) (*matcher.Matcher, error) {
	st, err := iostore.Open(config.StoreDir(cfg.HomeDir))
	if err != nil {
		return nil, err
	}
	defer st.Close()

	ix := ioindex.New(cfg, st, ioindex.OptQuiet(true))
	return ix.Matcher(ctx, cfg.DatasetKeys...)
}

func singleQuery(cmd *cobra.Command, name string) match.Query {
	res := match.Query{ScientificName: name}
	if s, _ := cmd.Flags().GetString("rank"); s != "" {
		res.Rank = rank.Parse(s)
	}
	if s, _ := cmd.Flags().GetString("kingdom"); s != "" {
		res.Classification.Kingdom = s
	}
	if s, _ := cmd.Flags().GetString("family"); s != "" {
		res.Classification.Family = s
	}
	return res
}
