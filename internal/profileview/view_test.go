package profileview

import (
	"errors"
	"testing"
	"time"

	"teacher_portal_backend/internal/model"
)

func TestRenderOrderAndBasicInfo(t *testing.T) {
	p := fullProfile()
	v := Render(p, NewExpansionState())

	if v.TeacherID != 7 {
		t.Errorf("teacher id = %d", v.TeacherID)
	}
	bi := v.BasicInfo
	if bi.Title != "Basic Information" || bi.Name != p.Name || bi.RegistrationNo != p.RegistrationNo ||
		bi.Designation != p.Designation || bi.Status != p.Status || bi.Gender != p.Gender || bi.Photo != p.ProfilePhoto {
		t.Errorf("basic info = %+v", bi)
	}
	if bi.Edit.TargetID != TargetEditBasicInfo || bi.Edit.Context != p {
		t.Errorf("basic info edit = %+v", bi.Edit)
	}

	want := []SectionID{SectionSchedule, SectionAttendance, SectionFeedback}
	if len(v.Sections) != len(want) {
		t.Fatalf("got %d sections", len(v.Sections))
	}
	for i, id := range want {
		if v.Sections[i].SectionID() != id {
			t.Errorf("section %d = %s, want %s", i, v.Sections[i].SectionID(), id)
		}
		if v.Sections[i].Variant() != VariantPopulated {
			t.Errorf("%s should be populated", id)
		}
	}
}

func TestRenderEmptyProfileAllPlaceholders(t *testing.T) {
	p := &model.Profile{ID: 3, Name: "New Hire"}
	v := Render(p, NewExpansionState())
	for _, s := range v.Sections {
		if s.Variant() != VariantPlaceholder {
			t.Errorf("%s should be a placeholder", s.SectionID())
		}
	}
	if v.BasicInfo.Name != "New Hire" {
		t.Error("basic info is rendered unconditionally")
	}
}

func TestRenderDoesNotMutateState(t *testing.T) {
	state := NewExpansionState()
	state.Toggle(SectionSchedule)
	before := state.Snapshot()

	Render(fullProfile(), state)
	Render(fullProfile(), state)

	after := state.Snapshot()
	for id, v := range before {
		if after[id] != v {
			t.Errorf("%s changed during render", id)
		}
	}
}

func TestSessionToggleReflectsOnNextRender(t *testing.T) {
	s := NewSession("s1", fullProfile(), time.Unix(0, 0))
	if s.TeacherID != 7 {
		t.Fatalf("teacher id = %d", s.TeacherID)
	}

	expanded, err := s.Toggle(SectionAttendance)
	if err != nil || expanded {
		t.Fatalf("Toggle = %v, %v; want false, nil", expanded, err)
	}
	sec := s.Render().Section(SectionAttendance).(*PopulatedSection)
	if sec.Expanded || sec.Body != nil {
		t.Errorf("attendance should render collapsed: %+v", sec)
	}

	expanded, _ = s.Toggle(SectionAttendance)
	sec = s.Render().Section(SectionAttendance).(*PopulatedSection)
	if !expanded || !sec.Expanded || sec.Body == nil {
		t.Errorf("attendance should render expanded again: %+v", sec)
	}
}

func TestSessionTogglePlaceholderIsNoop(t *testing.T) {
	p := fullProfile()
	p.Feedback = nil
	s := NewSession("s2", p, time.Now())

	expanded, err := s.Toggle(SectionFeedback)
	if !errors.Is(err, ErrSectionNotCollapsible) {
		t.Fatalf("err = %v, want ErrSectionNotCollapsible", err)
	}
	if !expanded || !s.State.IsExpanded(SectionFeedback) {
		t.Error("state must be untouched")
	}
	if s.Render().Section(SectionFeedback).Variant() != VariantPlaceholder {
		t.Error("feedback should still be a placeholder")
	}
}

func TestSessionToggleUnknown(t *testing.T) {
	s := NewSession("s3", fullProfile(), time.Now())
	if _, err := s.Toggle("grades"); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("err = %v", err)
	}
}

func TestSessionBinaryRoundTripKeepsState(t *testing.T) {
	s := NewSession("s4", fullProfile(), time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	s.Toggle(SectionSchedule)

	data, err := s.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Session
	if err := back.UnmarshalBinary(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.ID != "s4" || back.TeacherID != 7 || !back.OpenedAt.Equal(s.OpenedAt) {
		t.Errorf("header = %+v", back)
	}
	if back.State.IsExpanded(SectionSchedule) || !back.State.IsExpanded(SectionFeedback) {
		t.Errorf("state = %v", back.State.Snapshot())
	}
	if len(back.Profile.CoursesAttendance) != 3 || !HasSchedule(back.Profile) {
		t.Error("profile snapshot lost data")
	}
}
