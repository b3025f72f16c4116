package iomatch

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmatch/pkg/ent/match"
)

// Output is the result for one query.
type Output struct {
	Index int    `json:"index"`
	ID    string `json:"id"`

	// InputName is the scientific name of the query.
	InputName string `json:"inputName,omitempty"`

	match.NameUsageMatch
}

// Header returns column names of CSV and TSV output.
func Header() []string {
	res := []string{
		"Index", "Id", "InputName", "MatchType", "Confidence", "Synonym",
		"UsageKey", "ScientificName", "CanonicalName", "Authorship", "Rank",
		"Status", "AcceptedKey", "AcceptedName",
	}
	for _, r := range match.FlatRanks() {
		name := strings.ToLower(r.String())
		res = append(res, strings.ToUpper(name[:1])+name[1:])
	}
	return append(res, "Issues", "Note")
}

// Row converts an output to CSV or TSV fields in the order of Header.
func (o Output) Row() []string {
	d := o.Diagnostics
	res := []string{
		strconv.Itoa(o.Index), o.ID, o.InputName,
		d.MatchType.String(), strconv.Itoa(d.Confidence),
		strconv.FormatBool(o.Synonym),
	}

	var key, name, can, auth, rnk, status, accKey, accName string
	if u := o.Usage; u != nil {
		key, name, can, auth = u.ID, u.ScientificName, u.CanonicalName,
			u.Authorship
		rnk, status = u.Rank.String(), u.Status.String()
	}
	if a := o.AcceptedUsage; a != nil {
		accKey, accName = a.ID, a.ScientificName
	}
	res = append(res, key, name, can, auth, rnk, status, accKey, accName)

	names, _ := o.Flat()
	res = append(res, names...)

	issues := make([]string, len(d.Issues))
	for i, v := range d.Issues {
		issues[i] = string(v)
	}
	return append(res, strings.Join(issues, "|"), d.Note)
}

// writer prints outputs in one of the formats of config.Config.Format.
type writer struct {
	w      io.Writer
	format string
	enc    gnfmt.GNjson
}

func newWriter(w io.Writer, format string) *writer {
	return &writer{
		w:      w,
		format: format,
		enc:    gnfmt.GNjson{Pretty: format == "pretty"},
	}
}

func (wr *writer) sep() (rune, bool) {
	switch wr.format {
	case "csv":
		return ',', true
	case "tsv":
		return '\t', true
	}
	return 0, false
}

func (wr *writer) header() error {
	sep, ok := wr.sep()
	if !ok {
		return nil
	}
	return wr.line(gnfmt.ToCSV(Header(), sep))
}

func (wr *writer) write(outs []Output) error {
	for _, o := range outs {
		if sep, ok := wr.sep(); ok {
			if err := wr.line(gnfmt.ToCSV(o.Row(), sep)); err != nil {
				return err
			}
			continue
		}

		bs, err := wr.enc.Encode(o)
		if err != nil {
			return MatchOutputError(err)
		}
		if err = wr.line(string(bs)); err != nil {
			return err
		}
	}
	return nil
}

func (wr *writer) line(s string) error {
	_, err := fmt.Fprintln(wr.w, strings.TrimSuffix(s, "\n"))
	if err != nil {
		return MatchOutputError(err)
	}
	return nil
}

// Write prints outputs in the given format. CSV and TSV get a header
// line.
func Write(w io.Writer, format string, outs []Output) error {
	wr := newWriter(w, format)
	if err := wr.header(); err != nil {
		return err
	}
	return wr.write(outs)
}
