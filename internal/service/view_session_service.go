package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"teacher_portal_backend/internal/model"
	"teacher_portal_backend/internal/profileview"
	"teacher_portal_backend/internal/repository"
	"teacher_portal_backend/internal/util"
	"teacher_portal_backend/pkg/logger"
	"teacher_portal_backend/pkg/monitoring"
	"teacher_portal_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type ProfileLoader interface {
	GetProfile(ctx context.Context, id uint) (*model.Profile, error)
}

// SessionView is what every view session endpoint answers with.
type SessionView struct {
	SessionID string            `json:"sessionId"`
	ExpiresAt time.Time         `json:"expiresAt"`
	View      *profileview.View `json:"view"`
}

type ViewSessionService struct {
	Profiles ProfileLoader
	Sessions repository.ViewSessionRepository
	PhotoURL func(photo string) string
	NewID    func() string
	Now      func() time.Time

	ttl atomic.Int64
}

func NewViewSessionService(profiles ProfileLoader, sessions repository.ViewSessionRepository, ttl time.Duration, photoURL func(string) string) *ViewSessionService {
	s := &ViewSessionService{
		Profiles: profiles,
		Sessions: sessions,
		PhotoURL: photoURL,
		NewID:    model.GenerateUUID,
		Now:      time.Now,
	}
	s.SetTTL(ttl)
	return s
}

// SetTTL applies to sessions saved from now on. Safe to call while serving.
func (s *ViewSessionService) SetTTL(ttl time.Duration) {
	s.ttl.Store(int64(ttl))
}

func (s *ViewSessionService) TTL() time.Duration {
	return time.Duration(s.ttl.Load())
}

// Open snapshots the teacher's profile and starts a session with every section expanded.
func (s *ViewSessionService) Open(ctx context.Context, teacherID, ownerID uint) (*SessionView, error) {
	profile, err := s.Profiles.GetProfile(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	session := profileview.NewSession(s.NewID(), profile, s.Now())
	session.OwnerID = ownerID

	if err := s.Sessions.Save(ctx, session, s.TTL()); err != nil {
		return nil, err
	}
	monitoring.SessionsOpened.Inc()

	logger.Log.Info("profile view session opened",
		zap.String("sessionID", session.ID),
		zap.Uint("teacherID", teacherID),
		zap.Uint("ownerID", ownerID),
	)

	return s.render(ctx, session), nil
}

// Render re-renders the session and extends its lifetime.
func (s *ViewSessionService) Render(ctx context.Context, sessionID string, userID uint) (*SessionView, error) {
	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, session, s.TTL()); err != nil {
		return nil, err
	}
	return s.render(ctx, session), nil
}

// Toggle flips one section and returns the re-rendered view. Toggling a placeholder
// returns profileview.ErrSectionNotCollapsible and leaves the session unchanged.
func (s *ViewSessionService) Toggle(ctx context.Context, sessionID string, userID uint, section string) (*SessionView, error) {
	id, err := profileview.ParseSectionID(section)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, section)
	}

	session, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	expanded, err := session.Toggle(id)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, session, s.TTL()); err != nil {
		return nil, err
	}
	monitoring.SectionToggles.WithLabelValues(string(id)).Inc()

	logger.Log.Debug("profile view section toggled",
		zap.String("sessionID", session.ID),
		zap.String("section", string(id)),
		zap.Bool("expanded", expanded),
	)

	return s.render(ctx, session), nil
}

func (s *ViewSessionService) Close(ctx context.Context, sessionID string, userID uint) error {
	if _, err := s.load(ctx, sessionID, userID); err != nil {
		return err
	}
	if err := s.Sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, util.ErrSessionNotFound) {
		return err
	}
	logger.Log.Info("profile view session closed", zap.String("sessionID", sessionID))
	return nil
}

func (s *ViewSessionService) load(ctx context.Context, sessionID string, userID uint) (*profileview.Session, error) {
	session, err := s.Sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.OwnerID != userID {
		return nil, util.ErrSessionForbidden
	}
	return session, nil
}

func (s *ViewSessionService) render(ctx context.Context, session *profileview.Session) *SessionView {
	_, span := tracing.Tracer.Start(ctx, "profileview.render")
	defer span.End()

	view := session.Render()
	if s.PhotoURL != nil {
		view.BasicInfo.PhotoURL = s.PhotoURL(view.BasicInfo.Photo)
	}

	placeholders := 0
	for _, sec := range view.Sections {
		monitoring.SectionsRendered.WithLabelValues(string(sec.SectionID()), string(sec.Variant())).Inc()
		if sec.Variant() == profileview.VariantPlaceholder {
			placeholders++
		}
	}

	span.SetAttributes(
		attribute.String("session.id", session.ID),
		attribute.Int64("teacher.id", int64(session.TeacherID)),
		attribute.Int("sections.placeholder", placeholders),
	)
	span.SetStatus(codes.Ok, "")

	return &SessionView{
		SessionID: session.ID,
		ExpiresAt: s.Now().Add(s.TTL()),
		View:      view,
	}
}
