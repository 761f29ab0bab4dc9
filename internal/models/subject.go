package models

import "strings"

// SubjectDescriptor identifies a tutoring subject variant by the triple
// (name, type, grade). It is embedded flat into the rows that carry it.
type SubjectDescriptor struct {
	Name  string `db:"subject_name" json:"subject_name"`
	Type  string `db:"subject_type" json:"subject_type"`
	Grade string `db:"subject_grade" json:"subject_grade"`
}

// Complete reports whether all three components are present.
func (s SubjectDescriptor) Complete() bool {
	return strings.TrimSpace(s.Name) != "" &&
		strings.TrimSpace(s.Type) != "" &&
		strings.TrimSpace(s.Grade) != ""
}

// NameMatches reports whether this descriptor's name, lower-cased and
// trimmed, is contained in the target name. Containment is asymmetric so
// that one approval ("Chemistry") covers variant labels ("Chemistry HL")
// without an approval per variant.
func (s SubjectDescriptor) NameMatches(targetName string) bool {
	approved := strings.ToLower(strings.TrimSpace(s.Name))
	target := strings.ToLower(strings.TrimSpace(targetName))
	if approved == "" || target == "" {
		return false
	}
	return strings.Contains(target, approved)
}
