package iomatch

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnuuid"
)

// Input is one query of a batch.
type Input struct {
	// Index is the zero-based position of the query in the input.
	Index int

	// ID identifies the query in the output. It comes from an id column
	// or is a UUID v5 of the input line.
	ID string

	Query match.Query
}

// setter copies a TSV field into a query.
type setter func(*match.Query, string)

var columns = map[string]setter{
	"usagekey":         func(q *match.Query, s string) { q.UsageKey = s },
	"taxonid":          func(q *match.Query, s string) { q.TaxonID = s },
	"taxonconceptid":   func(q *match.Query, s string) { q.TaxonConceptID = s },
	"scientificnameid": func(q *match.Query, s string) { q.ScientificNameID = s },
	"scientificname":   func(q *match.Query, s string) { q.ScientificName = s },
	"name":             func(q *match.Query, s string) { q.ScientificName = s },
	"authorship":       func(q *match.Query, s string) { q.Authorship = s },
	"scientificnameauthorship": func(q *match.Query, s string) {
		q.Authorship = s
	},
	"rank":      func(q *match.Query, s string) { q.Rank = rank.Parse(s) },
	"taxonrank": func(q *match.Query, s string) { q.Rank = rank.Parse(s) },
	"kingdom":   func(q *match.Query, s string) { q.Classification.Kingdom = s },
	"phylum":    func(q *match.Query, s string) { q.Classification.Phylum = s },
	"class":     func(q *match.Query, s string) { q.Classification.Class = s },
	"order":     func(q *match.Query, s string) { q.Classification.Order = s },
	"family":    func(q *match.Query, s string) { q.Classification.Family = s },
	"genus":     func(q *match.Query, s string) { q.Classification.Genus = s },
	"subgenus": func(q *match.Query, s string) {
		q.Classification.Subgenus = s
	},
	"species": func(q *match.Query, s string) {
		q.Classification.Species = s
	},
	"excludekeys": func(q *match.Query, s string) {
		for k := range strings.SplitSeq(s, "|") {
			if k = strings.TrimSpace(k); k != "" {
				q.ExcludeKeys = append(q.ExcludeKeys, k)
			}
		}
	},
}

// normHeader makes "scientific_name", "dwc:scientificName" and
// "Scientific Name" the same column.
func normHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "dwc:")
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// reader reads either a plain list of names, one per line, or a TSV file
// with a header line. A file is TSV when its first non-empty line has
// tabs and a name or identifier column.
type reader struct {
	sc   *bufio.Scanner
	line int
	idx  int

	headerRead bool
	fields     []setter
	idField    int
}

func newReader(r io.Reader) *reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &reader{sc: sc, idField: -1}
}

// next returns the next query or io.EOF.
func (rd *reader) next() (Input, error) {
	for rd.sc.Scan() {
		rd.line++
		line := strings.TrimRight(rd.sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !rd.headerRead {
			rd.headerRead = true
			if rd.readHeader(line) {
				continue
			}
		}

		res := Input{Index: rd.idx}
		if rd.fields == nil {
			res.Query.ScientificName = strings.TrimSpace(line)
		} else {
			rd.setFields(&res, line)
		}
		if res.ID == "" {
			res.ID = gnuuid.New(line).String()
		}
		rd.idx++
		return res, nil
	}
	if err := rd.sc.Err(); err != nil {
		return Input{}, MatchInputError(rd.line+1, err)
	}
	return Input{}, io.EOF
}

func (rd *reader) readHeader(line string) bool {
	if !strings.Contains(line, "\t") {
		return false
	}
	hs := strings.Split(line, "\t")
	fields := make([]setter, len(hs))
	var known bool
	for i, h := range hs {
		h = normHeader(h)
		if h == "id" {
			rd.idField = i
			continue
		}
		if f, ok := columns[h]; ok {
			fields[i] = f
			known = true
		}
	}
	if !known {
		rd.idField = -1
		return false
	}
	rd.fields = fields
	return true
}

func (rd *reader) setFields(in *Input, line string) {
	vals := strings.Split(line, "\t")
	for i, v := range vals {
		if i >= len(rd.fields) {
			break
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if i == rd.idField {
			in.ID = v
			continue
		}
		if f := rd.fields[i]; f != nil {
			f(&in.Query, v)
		}
	}
}

// ReadAll reads all queries of an input.
func ReadAll(r io.Reader) ([]Input, error) {
	rd := newReader(r)
	var res []Input
	for {
		in, err := rd.next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, in)
	}
}
