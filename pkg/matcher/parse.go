package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnmatch/pkg/authorship"
	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/gnames/gnmatch/pkg/parserpool"
	"github.com/gnames/gnparser/ent/parsed"
)

type nameKind int

const (
	unknownKind nameKind = iota
	scientificName
	otuName
	virusName
	hybridFormula
	unparsable
)

// isStrictType marks names where an exact hit is especially trustworthy.
func (k nameKind) isStrictType() bool {
	return k == otuName || k == virusName || k == hybridFormula
}

// query is a cleaned and parsed match.Query.
type query struct {
	// canonical is the name used for index lookups.
	canonical string

	// genus is the genus of a bi- or trinomial, or the uninomial.
	genus        string
	epithet      string
	infraEpithet string

	rank rank.Rank
	kind nameKind

	// parsed is false for names that were not given to the parser.
	parsed bool
	auth   authorship.Name

	cls usage.Classification
}

var (
	otuRe       = regexp.MustCompile(`^(BOLD:[0-9A-Z]{7}|SH[0-9]{6,8}\.[0-9]{2}FU)$`)
	firstWordRe = regexp.MustCompile(`^\PL*(\pL[\pL-]*)`)
	// indetRe finds indetermined species like "Abies sp." or "Abies spec."
	indetRe = regexp.MustCompile(`(?i)\s(sp|spp|spec|species)\.?(\s|$)`)
)

// clean replaces control characters and odd whitespace by spaces and
// collapses runs of whitespace.
func clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// cleanClassification keeps only the first word of every higher taxon,
// removing authorships and other appendices.
func cleanClassification(c usage.Classification) usage.Classification {
	for _, r := range rank.LinneanRanks {
		if r == rank.Species {
			continue
		}
		v := clean(c.Get(r))
		if m := firstWordRe.FindStringSubmatch(v); m != nil {
			v = m[1]
		}
		c.Set(r, v)
	}
	c.Species = clean(c.Species)
	return c
}

func isSingleCase(s string) bool {
	return strings.ToLower(s) == s || strings.ToUpper(s) == s
}

// parse turns a raw query into a query for the index. The second value is
// true when fuzzy matching has to be switched off because the name cannot
// be parsed reliably.
func (m *Matcher) parse(mq match.Query) (*query, bool) {
	name := clean(mq.ScientificName)
	auth := clean(mq.Authorship)
	if auth != "" && !strings.Contains(name, auth) {
		name = strings.TrimSpace(name + " " + auth)
	}

	res := &query{
		canonical: name,
		rank:      mq.Rank,
		cls:       cleanClassification(mq.Classification),
	}
	if name == "" {
		return res, false
	}

	if otuRe.MatchString(name) {
		res.kind = otuName
		res.rank = rank.Unranked
		return res, true
	}

	if isSingleCase(name) {
		// such names cannot be parsed properly, use them as they are
		if !res.rank.IsKnown() {
			res.rank = rank.Unranked
		}
		return res, true
	}

	p := m.parseName(name, nomcode.Unknown)
	switch {
	case p.Virus:
		res.kind = virusName
		return res, true
	case !p.Parsed || p.Canonical == nil || p.Canonical.Simple == "":
		res.kind = unparsable
		return res, true
	case strings.Contains(p.Canonical.Simple, "×"):
		res.kind = hybridFormula
		return res, true
	}

	res.kind = scientificName
	res.parsed = true
	res.auth = authorship.FromParsed(p)
	res.canonical = p.Canonical.Simple

	words := strings.Fields(p.Canonical.Simple)
	res.genus = words[0]
	if len(words) > 1 {
		res.epithet = words[1]
	}
	if len(words) > 2 {
		res.infraEpithet = words[len(words)-1]
	}

	// parsed ranks are used for bi- and trinomials only
	if !res.rank.IsKnown() {
		res.rank = inferRank(p, words)
	}
	return res, false
}

var infraMarkers = map[string]rank.Rank{
	"subsp.":  rank.Subspecies,
	"ssp.":    rank.Subspecies,
	"var.":    rank.Variety,
	"subvar.": rank.Subvariety,
	"f.":      rank.Form,
	"fo.":     rank.Form,
	"forma":   rank.Form,
	"subf.":   rank.Subform,
	"cv.":     rank.Cultivar,
	"agg.":    rank.SpeciesAggregate,
	"aggr.":   rank.SpeciesAggregate,
}

func inferRank(p parsed.Parsed, words []string) rank.Rank {
	full := strings.Fields(p.Canonical.Full)
	marker := func(def rank.Rank) rank.Rank {
		for _, w := range full {
			if r, ok := infraMarkers[strings.ToLower(w)]; ok {
				return r
			}
		}
		return def
	}

	switch len(words) {
	case 1:
		if p.Surrogate != nil && indetRe.MatchString(p.Verbatim) {
			return rank.Species
		}
	case 2:
		if r := marker(rank.Species); r == rank.SpeciesAggregate {
			return r
		}
		return rank.Species
	case 3:
		return marker(rank.InfraspecificName)
	default:
		return rank.InfrasubspecificName
	}
	return rank.Unknown
}

// parseName parses a name through the cache.
func (m *Matcher) parseName(name string, code nomcode.Code) parsed.Parsed {
	key := fmt.Sprintf("%v|%s", code, name)
	if p, ok := m.cache.Get(key); ok {
		return p
	}
	p := m.pool.Parse(name, code)
	m.cache.Add(key, p)
	return p
}

// candidateAuthorship parses the authorship of an indexed usage.
func (m *Matcher) candidateAuthorship(u *usage.NameUsage) authorship.Name {
	code := parserpool.Code(u.Code)
	p := m.parseName(u.ScientificName, code)
	res := authorship.FromParsed(p)
	if res.IsEmpty() && u.Authorship != "" {
		p = m.parseName(u.Name()+" "+u.Authorship, code)
		res = authorship.FromParsed(p)
	}
	return res
}
