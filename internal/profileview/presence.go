package profileview

import "teacher_portal_backend/internal/model"

// HasSchedule reports whether any weekday has at least one slot.
func HasSchedule(p *model.Profile) bool {
	if p == nil {
		return false
	}
	for _, day := range model.Weekdays {
		if len(p.Schedule.Day(day)) > 0 {
			return true
		}
	}
	return false
}

func HasAttendance(p *model.Profile) bool {
	return p != nil && len(p.CoursesAttendance) > 0
}

func HasFeedback(p *model.Profile) bool {
	return p != nil && len(p.Feedback) > 0
}

// Present dispatches to the presence check of the given section.
func Present(p *model.Profile, id SectionID) bool {
	def, ok := lookupSection(id)
	if !ok {
		return false
	}
	return def.present(p)
}
