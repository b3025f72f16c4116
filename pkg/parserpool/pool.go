// Package parserpool shares gnparser instances between goroutines. Parsing
// is pure computation, so the package does no I/O.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool parses scientific names concurrently.
type Pool interface {
	// Parse parses a name according to a nomenclatural code. Botanical and
	// cultivar names use the botanical parser, everything else the
	// zoological one.
	Parse(name string, code nomcode.Code) parsed.Parsed

	// Close releases the parsers. The pool cannot be used afterwards.
	Close()
}

type pool struct {
	botanicalCh  chan gnparser.GNparser
	zoologicalCh chan gnparser.GNparser
}

// New creates a pool with jobs parsers per code. Zero jobs means the
// number of CPUs.
func New(jobs int) Pool {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	botCfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Botanical),
		gnparser.OptWithDetails(true),
	)
	zooCfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Zoological),
		gnparser.OptWithDetails(true),
	)

	return &pool{
		botanicalCh:  gnparser.NewPool(botCfg, jobs),
		zoologicalCh: gnparser.NewPool(zooCfg, jobs),
	}
}

func (p *pool) Parse(name string, code nomcode.Code) parsed.Parsed {
	ch := p.zoologicalCh
	if code == nomcode.Botanical || code == nomcode.Cultivars {
		ch = p.botanicalCh
	}

	prs := <-ch
	res := prs.ParseName(name)
	ch <- prs
	return res
}

func (p *pool) Close() {
	for _, ch := range []chan gnparser.GNparser{p.botanicalCh, p.zoologicalCh} {
		if ch == nil {
			continue
		}
		close(ch)
		for range ch {
		}
	}
}

// Code converts a code name of a name usage ("botanical", "ICZN", ...)
// into a nomenclatural code that changes parsing. Other values give
// nomcode.Unknown.
func Code(s string) nomcode.Code {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "botanical", "botany", "icn", "icbn", "icnafp":
		return nomcode.Botanical
	case "cultivars", "cultivar", "icncp":
		return nomcode.Cultivars
	case "zoological", "zoology", "iczn":
		return nomcode.Zoological
	}
	return nomcode.Unknown
}
