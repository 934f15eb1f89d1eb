package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/will-terra/teste-time-register/internal/domain"
)

type ReportRepo struct{ db *gorm.DB }

func NewReportRepo(db *gorm.DB) *ReportRepo { return &ReportRepo{db: db} }

func (r *ReportRepo) Create(rep *domain.Report) error { return r.db.Create(rep).Error }

func (r *ReportRepo) FindByID(id uint) (*domain.Report, error) {
	var rep domain.Report
	err := r.db.First(&rep, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rep, err
}

func (r *ReportRepo) FindByProcessID(processID string) (*domain.Report, error) {
	var rep domain.Report
	err := r.db.First(&rep, "process_id = ?", processID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rep, err
}

func (r *ReportRepo) ListByStatus(status domain.ReportStatus, limit, offset int) ([]domain.Report, int64, error) {
	q := r.db.Model(&domain.Report{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reps []domain.Report
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reps).Error; err != nil {
		return nil, 0, err
	}
	return reps, total, nil
}

func (r *ReportRepo) Update(rep *domain.Report) error { return r.db.Save(rep).Error }
