package profileview

import (
	"encoding/json"
	"fmt"
	"time"

	"teacher_portal_backend/internal/model"
)

const basicInfoTitle = "Basic Information"

// BasicInfo is always rendered and never collapsible.
type BasicInfo struct {
	Title          string `json:"title"`
	Name           string `json:"name"`
	RegistrationNo string `json:"registrationNo"`
	Designation    string `json:"designation"`
	Status         string `json:"status"`
	Gender         string `json:"gender"`
	Photo          string `json:"photo"`
	PhotoURL       string `json:"photoUrl,omitempty"`
	Edit           Intent `json:"edit"`
}

// View is the ordered view model: basic info first, then Schedule, Attendance, Feedback.
type View struct {
	TeacherID uint      `json:"teacherId"`
	BasicInfo BasicInfo `json:"basicInfo"`
	Sections  []Section `json:"sections"`
}

// Section returns the rendered section with the given id, or nil.
func (v *View) Section(id SectionID) Section {
	for _, s := range v.Sections {
		if s.SectionID() == id {
			return s
		}
	}
	return nil
}

// Render runs one render pass. It reads p and state and modifies neither.
func Render(p *model.Profile, state *ExpansionState) *View {
	v := &View{
		BasicInfo: BasicInfo{
			Title: basicInfoTitle,
			Edit:  Intent{TargetID: TargetEditBasicInfo, Context: p},
		},
		Sections: make([]Section, 0, len(sectionDefs)),
	}
	if p != nil {
		v.TeacherID = p.ID
		v.BasicInfo.Name = p.Name
		v.BasicInfo.RegistrationNo = p.RegistrationNo
		v.BasicInfo.Designation = p.Designation
		v.BasicInfo.Status = p.Status
		v.BasicInfo.Gender = p.Gender
		v.BasicInfo.Photo = p.ProfilePhoto
	}
	for _, def := range sectionDefs {
		v.Sections = append(v.Sections, renderSection(p, state, def))
	}
	return v
}

// Session is one view of one profile. The profile is a snapshot taken when the
// session opened; the expansion state starts fully expanded and dies with the session.
type Session struct {
	ID        string          `json:"id"`
	TeacherID uint            `json:"teacherId"`
	OwnerID   uint            `json:"ownerId"`
	Profile   *model.Profile  `json:"profile"`
	State     *ExpansionState `json:"state"`
	OpenedAt  time.Time       `json:"openedAt"`
}

func NewSession(id string, p *model.Profile, openedAt time.Time) *Session {
	s := &Session{
		ID:       id,
		Profile:  p,
		State:    NewExpansionState(),
		OpenedAt: openedAt,
	}
	if p != nil {
		s.TeacherID = p.ID
	}
	return s
}

func (s *Session) Render() *View {
	return Render(s.Profile, s.State)
}

// Toggle flips a populated section. Placeholder sections have nothing to collapse
// and are left untouched.
func (s *Session) Toggle(id SectionID) (bool, error) {
	def, ok := lookupSection(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	if !def.present(s.Profile) {
		return s.State.IsExpanded(id), ErrSectionNotCollapsible
	}
	if s.State == nil {
		s.State = NewExpansionState()
	}
	return s.State.Toggle(id), nil
}

// MarshalBinary and UnmarshalBinary let session stores keep the snapshot as JSON.
func (s *Session) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *Session) UnmarshalBinary(data []byte) error {
	type plain Session
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.State == nil {
		out.State = NewExpansionState()
	}
	*s = Session(out)
	return nil
}
