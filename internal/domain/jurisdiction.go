package domain

import (
	"fmt"
	"strings"
)

// Jurisdiction identifies a Canadian tax jurisdiction. Federal is used for the
// federal tax tables; the remaining values are provinces and territories of
// employment.
type Jurisdiction string

const (
	Federal Jurisdiction = "federal"
	AB      Jurisdiction = "AB"
	BC      Jurisdiction = "BC"
	MB      Jurisdiction = "MB"
	NB      Jurisdiction = "NB"
	NL      Jurisdiction = "NL"
	NS      Jurisdiction = "NS"
	NT      Jurisdiction = "NT"
	NU      Jurisdiction = "NU"
	ON      Jurisdiction = "ON"
	PE      Jurisdiction = "PE"
	QC      Jurisdiction = "QC"
	SK      Jurisdiction = "SK"
	YT      Jurisdiction = "YT"
)

// Provinces lists every province and territory of employment, in alphabetical
// order. Federal is not included.
var Provinces = []Jurisdiction{AB, BC, MB, NB, NL, NS, NT, NU, ON, PE, QC, SK, YT}

// ParseJurisdiction parses a province/territory code or "federal". Codes are
// case-insensitive.
func ParseJurisdiction(s string) (Jurisdiction, error) {
	if strings.EqualFold(s, string(Federal)) {
		return Federal, nil
	}
	code := Jurisdiction(strings.ToUpper(s))
	for _, j := range Provinces {
		if code == j {
			return j, nil
		}
	}
	return "", fmt.Errorf("unknown jurisdiction %q", s)
}

// IsProvince reports whether j is a province or territory (not Federal).
func (j Jurisdiction) IsProvince() bool {
	for _, p := range Provinces {
		if j == p {
			return true
		}
	}
	return false
}

func (j Jurisdiction) String() string { return string(j) }
