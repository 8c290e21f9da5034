package models

import (
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// FR — Foundational Requirement по IEC 62443-3-3
type FR string

const (
	FR1 FR = "FR1"
	FR2 FR = "FR2"
	FR3 FR = "FR3"
	FR4 FR = "FR4"
	FR5 FR = "FR5"
	FR6 FR = "FR6"
	FR7 FR = "FR7"
)

var AllFRs = []FR{FR1, FR2, FR3, FR4, FR5, FR6, FR7}

var frNames = map[FR]string{
	FR1: "Identification and Authentication Control",
	FR2: "Use Control",
	FR3: "System Integrity",
	FR4: "Data Confidentiality",
	FR5: "Restricted Data Flow",
	FR6: "Timely Response to Events",
	FR7: "Resource Availability",
}

func (f FR) Valid() bool {
	_, ok := frNames[f]
	return ok
}

func (f FR) Name() string {
	return frNames[f]
}

// FRSet — множество FR. В JSON/YAML это отсортированный массив кодов.
type FRSet map[FR]struct{}

func NewFRSet(frs ...FR) FRSet {
	s := FRSet{}
	for _, f := range frs {
		s.Add(f)
	}
	return s
}

func (s FRSet) Add(f FR) {
	if f.Valid() {
		s[f] = struct{}{}
	}
}

// Remove безопасен для nil-множества
func (s FRSet) Remove(f FR) {
	delete(s, f)
}

func (s FRSet) Has(f FR) bool {
	_, ok := s[f]
	return ok
}

func (s FRSet) Len() int {
	return len(s)
}

func (s FRSet) Difference(other FRSet) FRSet {
	out := FRSet{}
	for f := range s {
		if !other.Has(f) {
			out[f] = struct{}{}
		}
	}
	return out
}

func (s FRSet) Clone() FRSet {
	if s == nil {
		return nil
	}
	out := make(FRSet, len(s))
	for f := range s {
		out[f] = struct{}{}
	}
	return out
}

func (s FRSet) Sorted() []FR {
	out := make([]FR, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s FRSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// неизвестные коды молча отбрасываются
func (s *FRSet) UnmarshalJSON(data []byte) error {
	var codes []FR
	if err := json.Unmarshal(data, &codes); err != nil {
		return err
	}
	*s = NewFRSet(codes...)
	return nil
}

func (s FRSet) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}

func (s *FRSet) UnmarshalYAML(node *yaml.Node) error {
	var codes []FR
	if err := node.Decode(&codes); err != nil {
		return err
	}
	*s = NewFRSet(codes...)
	return nil
}
