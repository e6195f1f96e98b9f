package model

// swagger:model Teacher
type Teacher struct {
	BaseModel
	Name           string `gorm:"size:100;not null" json:"name"`
	RegistrationNo string `gorm:"size:50;uniqueIndex;not null" json:"registrationNo"`
	Designation    string `gorm:"size:100" json:"designation"`
	Status         string `gorm:"size:50" json:"status"`
	Gender         string `gorm:"size:20" json:"gender"`
	ProfilePhoto   string `gorm:"size:255" json:"profilePhoto"`

	ScheduleSlots []ScheduleSlot     `gorm:"foreignKey:TeacherID" json:"-"`
	Attendance    []CourseAttendance `gorm:"foreignKey:TeacherID" json:"-"`
	Feedback      []CourseFeedback   `gorm:"foreignKey:TeacherID" json:"-"`
}

func (Teacher) TableName() string {
	return "teachers"
}

type ScheduleSlot struct {
	BaseModel
	TeacherID  uint    `gorm:"index;not null" json:"teacherId"`
	Weekday    Weekday `gorm:"type:enum('monday','tuesday','wednesday','thursday','friday');not null" json:"weekday"`
	Position   int     `gorm:"not null;default:0" json:"position"`
	Time       string  `gorm:"size:50;not null" json:"time"`
	Department string  `gorm:"size:100" json:"department"`
	Section    string  `gorm:"size:20" json:"section"`
}

func (ScheduleSlot) TableName() string {
	return "teacher_schedule_slots"
}

type CourseAttendance struct {
	BaseModel
	TeacherID    uint   `gorm:"index;not null" json:"teacherId"`
	Position     int    `gorm:"not null;default:0" json:"position"`
	CourseCode   string `gorm:"size:20;not null" json:"code"`
	CourseName   string `gorm:"size:150" json:"name"`
	Department   string `gorm:"size:100" json:"department"`
	Section      string `gorm:"size:20" json:"section"`
	TotalClasses int    `gorm:"not null;default:0" json:"totalClasses"`
	ClassesTaken int    `gorm:"not null;default:0" json:"classesTaken"`
}

func (CourseAttendance) TableName() string {
	return "teacher_course_attendance"
}

type CourseFeedback struct {
	BaseModel
	TeacherID           uint    `gorm:"index;not null" json:"teacherId"`
	Position            int     `gorm:"not null;default:0" json:"position"`
	CourseCode          string  `gorm:"size:20;not null" json:"code"`
	CourseName          string  `gorm:"size:150" json:"name"`
	Department          string  `gorm:"size:100" json:"department"`
	Section             string  `gorm:"size:20" json:"section"`
	OverallRating       float64 `gorm:"type:decimal(4,2)" json:"rating"`
	TeachingRating      float64 `gorm:"type:decimal(4,2)" json:"teachingRating"`
	KnowledgeRating     float64 `gorm:"type:decimal(4,2)" json:"knowledgeRating"`
	CommunicationRating float64 `gorm:"type:decimal(4,2)" json:"communicationRating"`
}

func (CourseFeedback) TableName() string {
	return "teacher_course_feedback"
}

// Profile converts the loaded rows. Collections without rows stay nil.
// Slots must already be ordered by position.
func (t *Teacher) Profile() *Profile {
	p := &Profile{
		ID:             t.ID,
		Name:           t.Name,
		RegistrationNo: t.RegistrationNo,
		Designation:    t.Designation,
		Status:         t.Status,
		Gender:         t.Gender,
		ProfilePhoto:   t.ProfilePhoto,
	}

	if len(t.ScheduleSlots) > 0 {
		p.Schedule = make(Schedule)
		for _, s := range t.ScheduleSlots {
			p.Schedule[s.Weekday] = append(p.Schedule[s.Weekday], Slot{
				Time:       s.Time,
				Department: s.Department,
				Section:    s.Section,
			})
		}
	}

	for _, a := range t.Attendance {
		p.CoursesAttendance = append(p.CoursesAttendance, AttendanceRecord{
			CourseCode:   a.CourseCode,
			CourseName:   a.CourseName,
			Department:   a.Department,
			Section:      a.Section,
			TotalClasses: a.TotalClasses,
			ClassesTaken: a.ClassesTaken,
		})
	}

	for _, f := range t.Feedback {
		p.Feedback = append(p.Feedback, FeedbackEntry{
			Course:              CourseRef{Code: f.CourseCode, Name: f.CourseName},
			Department:          f.Department,
			Section:             f.Section,
			Rating:              f.OverallRating,
			TeachingRating:      f.TeachingRating,
			KnowledgeRating:     f.KnowledgeRating,
			CommunicationRating: f.CommunicationRating,
		})
	}

	return p
}

// NewTeacherFromProfile builds the rows for a fixture profile. Unknown weekdays are skipped.
func NewTeacherFromProfile(p *Profile) *Teacher {
	t := &Teacher{
		Name:           p.Name,
		RegistrationNo: p.RegistrationNo,
		Designation:    p.Designation,
		Status:         p.Status,
		Gender:         p.Gender,
		ProfilePhoto:   p.ProfilePhoto,
	}

	schedule := p.Schedule.Normalize()
	for _, day := range Weekdays {
		for i, s := range schedule.Day(day) {
			t.ScheduleSlots = append(t.ScheduleSlots, ScheduleSlot{
				Weekday:    day,
				Position:   i,
				Time:       s.Time,
				Department: s.Department,
				Section:    s.Section,
			})
		}
	}

	for i, a := range p.CoursesAttendance {
		t.Attendance = append(t.Attendance, CourseAttendance{
			Position:     i,
			CourseCode:   a.CourseCode,
			CourseName:   a.CourseName,
			Department:   a.Department,
			Section:      a.Section,
			TotalClasses: a.TotalClasses,
			ClassesTaken: a.ClassesTaken,
		})
	}

	for i, f := range p.Feedback {
		t.Feedback = append(t.Feedback, CourseFeedback{
			Position:            i,
			CourseCode:          f.Course.Code,
			CourseName:          f.Course.Name,
			Department:          f.Department,
			Section:             f.Section,
			OverallRating:       f.Rating,
			TeachingRating:      f.TeachingRating,
			KnowledgeRating:     f.KnowledgeRating,
			CommunicationRating: f.CommunicationRating,
		})
	}

	return t
}
