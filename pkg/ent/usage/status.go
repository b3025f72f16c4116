package usage

import (
	"encoding/json"
	"strings"
)

// Status is the taxonomic status of a name usage.
type Status int

const (
	Accepted Status = iota
	ProvisionallyAccepted
	SynonymStatus
	AmbiguousSynonym
	Misapplied
)

var statusNames = [...]string{
	"ACCEPTED",
	"PROVISIONALLY_ACCEPTED",
	"SYNONYM",
	"AMBIGUOUS_SYNONYM",
	"MISAPPLIED",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return statusNames[0]
	}
	return statusNames[s]
}

// ParseStatus converts status strings from SFGA, DwC-A and gnverifier data
// into a Status. Empty and unknown values are treated as accepted.
func ParseStatus(s string) Status {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	switch s {
	case "provisionally accepted", "provisional", "doubtful":
		return ProvisionallyAccepted
	case "synonym", "homotypic synonym", "heterotypic synonym",
		"objective synonym", "subjective synonym", "homotypic",
		"heterotypic", "invalid", "junior synonym":
		return SynonymStatus
	case "ambiguous synonym", "pro parte synonym", "proparte synonym",
		"ambiguous":
		return AmbiguousSynonym
	case "misapplied", "misapplied name":
		return Misapplied
	}
	return Accepted
}

// IsSynonym is true for all kinds of synonyms including misapplied names.
func (s Status) IsSynonym() bool {
	return s == SynonymStatus || s == AmbiguousSynonym || s == Misapplied
}

// IsAccepted is true for accepted and provisionally accepted usages.
func (s Status) IsAccepted() bool {
	return !s.IsSynonym()
}

// Score is the bonus a candidate gets for its status during matching.
// Accepted names are preferred over synonyms, misapplied names come last.
func (s Status) Score() int {
	switch s {
	case Accepted:
		return 1
	case SynonymStatus:
		return 0
	case AmbiguousSynonym:
		return -1
	case ProvisionallyAccepted:
		return -5
	case Misapplied:
		return -10
	}
	return 0
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(bs []byte) error {
	var str string
	if err := json.Unmarshal(bs, &str); err != nil {
		return err
	}
	*s = ParseStatus(str)
	return nil
}
