package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"teacher_portal_backend/internal/model"
	"teacher_portal_backend/internal/util"
	"teacher_portal_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TeacherStore interface {
	FindWithRecords(ctx context.Context, id uint) (*model.Teacher, error)
	List(ctx context.Context, page, limit int) ([]model.Teacher, int64, error)
	Create(ctx context.Context, teacher *model.Teacher) error
	UpdatePhoto(ctx context.Context, id uint, photo string) error
	Count(ctx context.Context) (int64, error)
}

// PhotoStorage is implemented by StorageService.
type PhotoStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}

// TeacherSummary is one row of the teacher directory.
type TeacherSummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	RegistrationNo string `json:"registrationNo"`
	Designation    string `json:"designation"`
	Status         string `json:"status"`
	PhotoURL       string `json:"photoUrl,omitempty"`
}

type ProfileService struct {
	Teachers TeacherStore
	Storage  PhotoStorage
}

func NewProfileService(teachers TeacherStore, storage PhotoStorage) *ProfileService {
	return &ProfileService{Teachers: teachers, Storage: storage}
}

// GetProfile loads a teacher and flattens it into the read-only profile the view renders.
func (s *ProfileService) GetProfile(ctx context.Context, id uint) (*model.Profile, error) {
	teacher, err := s.Teachers.FindWithRecords(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("load teacher %d: %w", id, err)
	}
	return teacher.Profile(), nil
}

func (s *ProfileService) ListTeachers(ctx context.Context, page, limit int) ([]TeacherSummary, int64, error) {
	teachers, total, err := s.Teachers.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	list := make([]TeacherSummary, 0, len(teachers))
	for _, t := range teachers {
		list = append(list, TeacherSummary{
			ID:             t.ID,
			Name:           t.Name,
			RegistrationNo: t.RegistrationNo,
			Designation:    t.Designation,
			Status:         t.Status,
			PhotoURL:       s.PhotoURL(t.ProfilePhoto),
		})
	}
	return list, total, nil
}

// PhotoURL resolves a stored photo key to something a client can fetch.
func (s *ProfileService) PhotoURL(photo string) string {
	if photo == "" || s.Storage == nil {
		return photo
	}
	return s.Storage.GetURL(photo)
}

// UploadPhoto stores a new photo and points the teacher at it. The object is
// removed again when the teacher row cannot be updated.
func (s *ProfileService) UploadPhoto(ctx context.Context, teacherID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := fmt.Sprintf("teachers/%d/%s%s", teacherID, model.GenerateUUID(), strings.ToLower(filepath.Ext(filename)))

	if err := s.Storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return "", fmt.Errorf("upload photo for teacher %d: %w", teacherID, err)
	}

	if err := s.Teachers.UpdatePhoto(ctx, teacherID, key); err != nil {
		if delErr := s.Storage.Delete(ctx, key); delErr != nil {
			logger.Log.Warn("failed to remove orphaned photo", zap.String("key", key), zap.Error(delErr))
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrTeacherNotFound
		}
		return "", err
	}

	return s.Storage.GetURL(key), nil
}

// Import stores fixture profiles. Ids in the fixture are ignored; the database assigns them.
func (s *ProfileService) Import(ctx context.Context, profiles []model.Profile) (int, error) {
	for i := range profiles {
		p := profiles[i]
		p.ID = 0
		if err := s.Teachers.Create(ctx, model.NewTeacherFromProfile(&p)); err != nil {
			return i, fmt.Errorf("import %s: %w", p.RegistrationNo, err)
		}
	}
	return len(profiles), nil
}

// SeedIfEmpty imports profiles only into an empty teachers table.
func (s *ProfileService) SeedIfEmpty(ctx context.Context, profiles []model.Profile) (int, error) {
	count, err := s.Teachers.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	return s.Import(ctx, profiles)
}
