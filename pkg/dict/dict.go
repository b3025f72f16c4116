// Package dict provides static dictionaries of higher taxon synonyms and of
// placeholder names that are not real taxa. The files are embedded into the
// binary and read once.
package dict

import (
	"bufio"
	"embed"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/errcode"
)

//go:embed data/*.txt
var data embed.FS

// SynonymFiles maps ranks to dictionary files with variant names.
var SynonymFiles = map[rank.Rank]string{
	rank.Kingdom: "kingdom.txt",
	rank.Phylum:  "phylum.txt",
	rank.Class:   "class.txt",
	rank.Order:   "order.txt",
	rank.Family:  "family.txt",
}

// BlacklistFile contains names that must never be used for comparison.
const BlacklistFile = "blacklisted.txt"

// Pair maps a variant of a higher taxon name to its canonical form.
type Pair struct {
	Variant   string
	Canonical string
}

// Synonyms reads the dictionary for a rank. Ranks without a dictionary
// return an empty slice.
func Synonyms(r rank.Rank) ([]Pair, error) {
	file, ok := SynonymFiles[r]
	if !ok {
		return nil, nil
	}
	lines, err := readLines(file)
	if err != nil {
		return nil, err
	}
	res := make([]Pair, 0, len(lines))
	for _, l := range lines {
		fields := strings.Split(l, "\t")
		if len(fields) < 2 {
			continue
		}
		p := Pair{
			Variant:   strings.TrimSpace(fields[0]),
			Canonical: strings.TrimSpace(fields[1]),
		}
		if p.Variant == "" || p.Canonical == "" {
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

// Blacklist reads the list of placeholder names.
func Blacklist() ([]string, error) {
	return readLines(BlacklistFile)
}

func readLines(file string) ([]string, error) {
	f, err := data.Open("data/" + file)
	if err != nil {
		return nil, readError(file, err)
	}
	defer f.Close()

	var res []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		l := strings.TrimSpace(sc.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		res = append(res, l)
	}
	if err = sc.Err(); err != nil {
		return nil, readError(file, err)
	}
	return res, nil
}

func readError(file string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DictionaryReadError,
		Msg:  "Cannot read dictionary <em>%s</em>",
		Vars: []any{file},
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), file, err),
	}
}
