package profileview

import (
	"encoding/json"
	"fmt"
	"strings"

	"teacher_portal_backend/internal/model"
)

type Variant string

const (
	VariantPopulated   Variant = "populated"
	VariantPlaceholder Variant = "placeholder"
)

// Navigation targets understood by the portal front end.
const (
	TargetEditBasicInfo    = "EditTeacherBasicInfo"
	TargetEditSchedule     = "EditTeacherSchedule"
	TargetEditAttendance   = "EditTeacherAttendance"
	TargetEditFeedback     = "EditTeacherFeedback"
	TargetCreateSchedule   = "CreateTeachingScheduleScreen"
	TargetCreateAttendance = "CreateClassAttendanceScreen"
	TargetCreateFeedback   = "CreateStudentFeedbackScreen"
)

const noClassesRecorded = "No classes recorded"

// Intent asks the client to navigate. The backend never navigates itself.
type Intent struct {
	TargetID string         `json:"targetId"`
	Context  *model.Profile `json:"context"`
}

// Section is either *PopulatedSection or *PlaceholderSection.
type Section interface {
	SectionID() SectionID
	Variant() Variant
	isSection()
}

// Body is one of ScheduleBody, AttendanceBody or FeedbackBody.
type Body interface {
	isBody()
}

type PopulatedSection struct {
	ID       SectionID `json:"section"`
	Title    string    `json:"title"`
	Expanded bool      `json:"expanded"`
	Edit     Intent    `json:"edit"`
	Body     Body      `json:"body,omitempty"`
}

func (s *PopulatedSection) SectionID() SectionID { return s.ID }
func (s *PopulatedSection) Variant() Variant     { return VariantPopulated }
func (*PopulatedSection) isSection()             {}

func (s *PopulatedSection) MarshalJSON() ([]byte, error) {
	type alias PopulatedSection
	return json.Marshal(struct {
		Variant Variant `json:"variant"`
		*alias
	}{VariantPopulated, (*alias)(s)})
}

type PlaceholderSection struct {
	ID     SectionID `json:"section"`
	Title  string    `json:"title"`
	Label  string    `json:"label"`
	Hint   string    `json:"hint"`
	Create Intent    `json:"create"`
}

func (s *PlaceholderSection) SectionID() SectionID { return s.ID }
func (s *PlaceholderSection) Variant() Variant     { return VariantPlaceholder }
func (*PlaceholderSection) isSection()             {}

func (s *PlaceholderSection) MarshalJSON() ([]byte, error) {
	type alias PlaceholderSection
	return json.Marshal(struct {
		Variant Variant `json:"variant"`
		*alias
	}{VariantPlaceholder, (*alias)(s)})
}

type ScheduleDay struct {
	Day   model.Weekday `json:"day"`
	Label string        `json:"label"`
	Slots []model.Slot  `json:"slots"`
}

type ScheduleBody struct {
	Days []ScheduleDay `json:"days"`
}

type AttendanceRow struct {
	CourseCode   string `json:"code"`
	CourseName   string `json:"name"`
	Department   string `json:"department"`
	Section      string `json:"section"`
	TotalClasses int    `json:"totalClasses"`
	ClassesTaken int    `json:"classesTaken"`
	// Percentage is nil when no classes are recorded.
	Percentage     *float64       `json:"percentage"`
	PercentageText string         `json:"percentageText"`
	Classification Classification `json:"classification"`
}

type AttendanceBody struct {
	Courses []AttendanceRow `json:"courses"`
}

type FeedbackRow struct {
	CourseCode          string `json:"code"`
	CourseName          string `json:"name"`
	Department          string `json:"department"`
	Section             string `json:"section"`
	Rating              string `json:"rating"`
	RatingText          string `json:"ratingText"`
	TeachingRating      string `json:"teachingRating"`
	KnowledgeRating     string `json:"knowledgeRating"`
	CommunicationRating string `json:"communicationRating"`
}

type FeedbackBody struct {
	Entries []FeedbackRow `json:"entries"`
}

func (ScheduleBody) isBody()   {}
func (AttendanceBody) isBody() {}
func (FeedbackBody) isBody()   {}

type sectionDef struct {
	id           SectionID
	title        string
	editTarget   string
	createTarget string
	present      func(*model.Profile) bool
	body         func(*model.Profile) Body
}

var sectionDefs = []sectionDef{
	{
		id:           SectionSchedule,
		title:        "Teaching Schedule",
		editTarget:   TargetEditSchedule,
		createTarget: TargetCreateSchedule,
		present:      HasSchedule,
		body:         scheduleBody,
	},
	{
		id:           SectionAttendance,
		title:        "Classes Attendance",
		editTarget:   TargetEditAttendance,
		createTarget: TargetCreateAttendance,
		present:      HasAttendance,
		body:         attendanceBody,
	},
	{
		id:           SectionFeedback,
		title:        "Student Feedback",
		editTarget:   TargetEditFeedback,
		createTarget: TargetCreateFeedback,
		present:      HasFeedback,
		body:         feedbackBody,
	},
}

func lookupSection(id SectionID) (sectionDef, bool) {
	for _, def := range sectionDefs {
		if def.id == id {
			return def, true
		}
	}
	return sectionDef{}, false
}

// RenderSection picks the variant from presence; the expansion state only decides
// whether a populated section carries its body.
func RenderSection(p *model.Profile, state *ExpansionState, id SectionID) (Section, error) {
	def, ok := lookupSection(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	return renderSection(p, state, def), nil
}

func renderSection(p *model.Profile, state *ExpansionState, def sectionDef) Section {
	if !def.present(p) {
		name := ""
		if p != nil {
			name = p.Name
		}
		return &PlaceholderSection{
			ID:     def.id,
			Title:  def.title,
			Label:  "Add " + def.title,
			Hint:   fmt.Sprintf("Click here to create %s for %s", strings.ToLower(def.title), name),
			Create: Intent{TargetID: def.createTarget, Context: p},
		}
	}

	expanded := state.IsExpanded(def.id)
	s := &PopulatedSection{
		ID:       def.id,
		Title:    def.title,
		Expanded: expanded,
		Edit:     Intent{TargetID: def.editTarget, Context: p},
	}
	if expanded {
		s.Body = def.body(p)
	}
	return s
}

func scheduleBody(p *model.Profile) Body {
	days := make([]ScheduleDay, 0, len(model.Weekdays))
	for _, day := range model.Weekdays {
		slots := p.Schedule.Day(day)
		if slots == nil {
			slots = []model.Slot{}
		}
		days = append(days, ScheduleDay{Day: day, Label: day.Label(), Slots: slots})
	}
	return ScheduleBody{Days: days}
}

func attendanceBody(p *model.Profile) Body {
	rows := make([]AttendanceRow, 0, len(p.CoursesAttendance))
	for _, c := range p.CoursesAttendance {
		pct := AttendancePercentage(c.ClassesTaken, c.TotalClasses)
		row := AttendanceRow{
			CourseCode:     c.CourseCode,
			CourseName:     c.CourseName,
			Department:     c.Department,
			Section:        c.Section,
			TotalClasses:   c.TotalClasses,
			ClassesTaken:   c.ClassesTaken,
			Classification: Classify(pct),
		}
		if v, ok := pct.Value(); ok {
			row.Percentage = &v
			row.PercentageText = pct.String() + "%"
		} else {
			row.PercentageText = noClassesRecorded
		}
		rows = append(rows, row)
	}
	return AttendanceBody{Courses: rows}
}

func feedbackBody(p *model.Profile) Body {
	rows := make([]FeedbackRow, 0, len(p.Feedback))
	for _, f := range p.Feedback {
		rows = append(rows, FeedbackRow{
			CourseCode:          f.Course.Code,
			CourseName:          f.Course.Name,
			Department:          f.Department,
			Section:             f.Section,
			Rating:              FormatRating(f.Rating),
			RatingText:          FormatRating(f.Rating) + "/5.0",
			TeachingRating:      FormatRating(f.TeachingRating),
			KnowledgeRating:     FormatRating(f.KnowledgeRating),
			CommunicationRating: FormatRating(f.CommunicationRating),
		})
	}
	return FeedbackBody{Entries: rows}
}
