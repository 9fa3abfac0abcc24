package rules

import (
	"fmt"
	"strings"
)

// TechField is one of the six research fields.
type TechField int

const (
	Energy TechField = iota
	Weapons
	Propulsion
	Construction
	Electronics
	Biotechnology
)

// TechFields lists the research fields in canonical order.
var TechFields = []TechField{Energy, Weapons, Propulsion, Construction, Electronics, Biotechnology}

var techFieldNames = map[TechField]string{
	Energy:        "Energy",
	Weapons:       "Weapons",
	Propulsion:    "Propulsion",
	Construction:  "Construction",
	Electronics:   "Electronics",
	Biotechnology: "Biotechnology",
}

func (f TechField) String() string {
	if name, ok := techFieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("TechField(%d)", int(f))
}

// ParseTechField accepts field names case-insensitively.
func ParseTechField(s string) (TechField, error) {
	for _, f := range TechFields {
		if strings.EqualFold(techFieldNames[f], s) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown tech field %q", s)
}

func (f TechField) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *TechField) UnmarshalText(text []byte) error {
	parsed, err := ParseTechField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// TechLevel holds a level per research field. It doubles as a tech's
// requirement set, where zero means no requirement in that field.
type TechLevel struct {
	Energy        int `json:"energy" yaml:"energy,omitempty"`
	Weapons       int `json:"weapons" yaml:"weapons,omitempty"`
	Propulsion    int `json:"propulsion" yaml:"propulsion,omitempty"`
	Construction  int `json:"construction" yaml:"construction,omitempty"`
	Electronics   int `json:"electronics" yaml:"electronics,omitempty"`
	Biotechnology int `json:"biotechnology" yaml:"biotechnology,omitempty"`
}

func (t TechLevel) Get(f TechField) int {
	switch f {
	case Energy:
		return t.Energy
	case Weapons:
		return t.Weapons
	case Propulsion:
		return t.Propulsion
	case Construction:
		return t.Construction
	case Electronics:
		return t.Electronics
	case Biotechnology:
		return t.Biotechnology
	}
	return 0
}

func (t *TechLevel) Set(f TechField, v int) {
	switch f {
	case Energy:
		t.Energy = v
	case Weapons:
		t.Weapons = v
	case Propulsion:
		t.Propulsion = v
	case Construction:
		t.Construction = v
	case Electronics:
		t.Electronics = v
	case Biotechnology:
		t.Biotechnology = v
	}
}

func (t *TechLevel) Add(f TechField, n int) {
	t.Set(f, t.Get(f)+n)
}

// Sum is the total number of levels across all fields.
func (t TechLevel) Sum() int {
	return t.Energy + t.Weapons + t.Propulsion + t.Construction + t.Electronics + t.Biotechnology
}

// Min is the lowest level in any field.
func (t TechLevel) Min() int {
	lowest := t.Energy
	for _, f := range TechFields[1:] {
		if v := t.Get(f); v < lowest {
			lowest = v
		}
	}
	return lowest
}

// Lowest returns the field with the lowest level, first in canonical order on ties.
func (t TechLevel) Lowest() TechField {
	field := Energy
	for _, f := range TechFields[1:] {
		if t.Get(f) < t.Get(field) {
			field = f
		}
	}
	return field
}

// Meets reports whether every field is at least the requirement.
func (t TechLevel) Meets(req TechLevel) bool {
	for _, f := range TechFields {
		if t.Get(f) < req.Get(f) {
			return false
		}
	}
	return true
}

// LevelsAbove is the smallest surplus over the fields a requirement names.
// A requirement naming no field measures surplus over every field.
func (t TechLevel) LevelsAbove(req TechLevel) int {
	surplus := -1
	for _, f := range TechFields {
		if req.Get(f) == 0 && req.Sum() != 0 {
			continue
		}
		d := t.Get(f) - req.Get(f)
		if surplus == -1 || d < surplus {
			surplus = d
		}
	}
	if surplus < 0 {
		return 0
	}
	return surplus
}

// FirstFieldBelow returns the first field in which t is below req.
func (t TechLevel) FirstFieldBelow(req TechLevel) (TechField, bool) {
	for _, f := range TechFields {
		if t.Get(f) < req.Get(f) {
			return f, true
		}
	}
	return 0, false
}

func (t TechLevel) String() string {
	return fmt.Sprintf("E%d W%d P%d C%d El%d B%d",
		t.Energy, t.Weapons, t.Propulsion, t.Construction, t.Electronics, t.Biotechnology)
}
