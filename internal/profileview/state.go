package profileview

import (
	"encoding/json"
	"errors"
)

var (
	ErrUnknownSection        = errors.New("unknown section")
	ErrSectionNotCollapsible = errors.New("section has no data to collapse")
)

type SectionID string

const (
	SectionSchedule   SectionID = "schedule"
	SectionAttendance SectionID = "attendance"
	SectionFeedback   SectionID = "feedback"
)

// SectionIDs in render order.
var SectionIDs = []SectionID{SectionSchedule, SectionAttendance, SectionFeedback}

func ParseSectionID(s string) (SectionID, error) {
	for _, id := range SectionIDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", ErrUnknownSection
}

// ExpansionState holds the expanded flag per section for one view session.
// A section with no entry is expanded.
type ExpansionState struct {
	expanded map[SectionID]bool
}

func NewExpansionState() *ExpansionState {
	s := &ExpansionState{expanded: make(map[SectionID]bool, len(SectionIDs))}
	for _, id := range SectionIDs {
		s.expanded[id] = true
	}
	return s
}

func (s *ExpansionState) IsExpanded(id SectionID) bool {
	if s == nil {
		return true
	}
	v, ok := s.expanded[id]
	if !ok {
		return true
	}
	return v
}

// Toggle flips id only and returns its new value. The receiver must be non-nil:
// a nil state reads as all expanded but has nowhere to record a toggle. The zero
// value is ready to use.
func (s *ExpansionState) Toggle(id SectionID) bool {
	if s.expanded == nil {
		s.expanded = make(map[SectionID]bool, len(SectionIDs))
	}
	next := !s.IsExpanded(id)
	s.expanded[id] = next
	return next
}

// Snapshot copies the state for every known section.
func (s *ExpansionState) Snapshot() map[SectionID]bool {
	out := make(map[SectionID]bool, len(SectionIDs))
	for _, id := range SectionIDs {
		out[id] = s.IsExpanded(id)
	}
	return out
}

func (s *ExpansionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// UnmarshalJSON ignores unknown section ids.
func (s *ExpansionState) UnmarshalJSON(data []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.expanded = make(map[SectionID]bool, len(SectionIDs))
	for _, id := range SectionIDs {
		v, ok := raw[string(id)]
		if !ok {
			v = true
		}
		s.expanded[id] = v
	}
	return nil
}
