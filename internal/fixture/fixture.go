// Package fixture reads teacher profiles from YAML files. The same format seeds the
// database and feeds the offline renderer.
package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"

	"teacher_portal_backend/internal/model"

	"gopkg.in/yaml.v3"
)

type File struct {
	Teachers []model.Profile `yaml:"teachers"`
}

var ErrEmpty = errors.New("fixture has no teachers")

func Load(path string) ([]model.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	profiles, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// Decode rejects unknown fields, duplicate registration numbers and schedule keys
// that are not Monday..Friday. Day keys may use any casing.
func Decode(r io.Reader) ([]model.Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	if len(file.Teachers) == 0 {
		return nil, ErrEmpty
	}

	seen := make(map[string]bool, len(file.Teachers))
	for i := range file.Teachers {
		p := &file.Teachers[i]
		if p.Name == "" || p.RegistrationNo == "" {
			return nil, fmt.Errorf("teacher #%d: name and registrationNo are required", i+1)
		}
		if seen[p.RegistrationNo] {
			return nil, fmt.Errorf("teacher #%d: duplicate registrationNo %s", i+1, p.RegistrationNo)
		}
		seen[p.RegistrationNo] = true

		days := make(map[model.Weekday]bool, len(p.Schedule))
		for day := range p.Schedule {
			d, ok := model.ParseWeekday(string(day))
			if !ok {
				return nil, fmt.Errorf("teacher %s: unknown schedule day %q", p.RegistrationNo, day)
			}
			if days[d] {
				return nil, fmt.Errorf("teacher %s: schedule day %s listed twice", p.RegistrationNo, d.Label())
			}
			days[d] = true
		}
		if p.Schedule != nil {
			p.Schedule = p.Schedule.Normalize()
		}

		for _, a := range p.CoursesAttendance {
			if a.TotalClasses < 0 || a.ClassesTaken < 0 {
				return nil, fmt.Errorf("teacher %s: course %s has negative class counts", p.RegistrationNo, a.CourseCode)
			}
		}

		if p.ID == 0 {
			p.ID = uint(i + 1)
		}
	}
	return file.Teachers, nil
}
