package repository

import (
	"context"

	"teacher_portal_backend/internal/model"

	"gorm.io/gorm"
)

type TeacherRepository struct {
	DB *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{DB: db}
}

// FindWithRecords loads a teacher together with schedule, attendance and feedback rows,
// each ordered the way the profile view lists them.
func (r *TeacherRepository) FindWithRecords(ctx context.Context, id uint) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.DB.WithContext(ctx).
		Preload("ScheduleSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("FIELD(weekday, 'monday','tuesday','wednesday','thursday','friday')").Order("position ASC")
		}).
		Preload("Attendance", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Feedback", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&teacher, id).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *TeacherRepository) List(ctx context.Context, page, limit int) ([]model.Teacher, int64, error) {
	var teachers []model.Teacher
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Teacher{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&teachers).Error
	return teachers, total, err
}

// Create inserts the teacher and its rows in one transaction.
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(teacher).Error
	})
}

func (r *TeacherRepository) UpdatePhoto(ctx context.Context, id uint, photo string) error {
	result := r.DB.WithContext(ctx).Model(&model.Teacher{}).
		Where("id = ?", id).
		Update("profile_photo", photo)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TeacherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Teacher{}).Count(&count).Error
	return count, err
}
