package model

import (
	"sort"
	"strings"
)

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

// Weekdays in display order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// ParseWeekday accepts any casing and surrounding spaces ("Monday", " monday").
func ParseWeekday(s string) (Weekday, bool) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, w := range Weekdays {
		if w == d {
			return d, true
		}
	}
	return "", false
}

// Label returns the display name, e.g. "Monday".
func (d Weekday) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// swagger:model Slot
type Slot struct {
	Time       string `json:"time" yaml:"time"`
	Department string `json:"department" yaml:"department"`
	Section    string `json:"section" yaml:"section"`
}

// Schedule maps a weekday to its ordered slots. A missing day is an empty day.
type Schedule map[Weekday][]Slot

// Day is safe on a nil schedule.
func (s Schedule) Day(d Weekday) []Slot {
	if s == nil {
		return nil
	}
	return s[d]
}

// Normalize lower-cases day keys and drops keys that are not Monday..Friday.
// Keys naming the same day ("Monday", "monday") are merged in sorted key order.
func (s Schedule) Normalize() Schedule {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	out := make(Schedule, len(s))
	for _, k := range keys {
		d, ok := ParseWeekday(k)
		if !ok {
			continue
		}
		out[d] = append(out[d], s[Weekday(k)]...)
	}
	return out
}

// swagger:model AttendanceRecord
type AttendanceRecord struct {
	CourseCode   string `json:"code" yaml:"code"`
	CourseName   string `json:"name" yaml:"name"`
	Department   string `json:"department" yaml:"department"`
	Section      string `json:"section" yaml:"section"`
	TotalClasses int    `json:"totalClasses" yaml:"totalClasses"`
	ClassesTaken int    `json:"classesTaken" yaml:"classesTaken"`
}

type CourseRef struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// swagger:model FeedbackEntry
type FeedbackEntry struct {
	Course              CourseRef `json:"course" yaml:"course"`
	Department          string    `json:"department" yaml:"department"`
	Section             string    `json:"section" yaml:"section"`
	Rating              float64   `json:"rating" yaml:"rating"`
	TeachingRating      float64   `json:"teachingRating" yaml:"teachingRating"`
	KnowledgeRating     float64   `json:"knowledgeRating" yaml:"knowledgeRating"`
	CommunicationRating float64   `json:"communicationRating" yaml:"communicationRating"`
}

// Profile is read-only for the lifetime of a view session.
// swagger:model Profile
type Profile struct {
	ID                uint               `json:"id" yaml:"id"`
	Name              string             `json:"name" yaml:"name"`
	RegistrationNo    string             `json:"registrationNo" yaml:"registrationNo"`
	Designation       string             `json:"designation" yaml:"designation"`
	Status            string             `json:"status" yaml:"status"`
	Gender            string             `json:"gender" yaml:"gender"`
	ProfilePhoto      string             `json:"profilePhoto" yaml:"profilePhoto"`
	Schedule          Schedule           `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	CoursesAttendance []AttendanceRecord `json:"coursesAttendance,omitempty" yaml:"coursesAttendance,omitempty"`
	Feedback          []FeedbackEntry    `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}
