package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/will-terra/teste-time-register/internal/domain"
)

type TimeRegisterRepo struct{ db *gorm.DB }

func NewTimeRegisterRepo(db *gorm.DB) *TimeRegisterRepo { return &TimeRegisterRepo{db: db} }

func (r *TimeRegisterRepo) Create(tr *domain.TimeRegister) error { return r.db.Create(tr).Error }

func (r *TimeRegisterRepo) FindByID(id uint) (*domain.TimeRegister, error) {
	var tr domain.TimeRegister
	err := r.db.First(&tr, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tr, err
}

func (r *TimeRegisterRepo) List() ([]domain.TimeRegister, error) {
	var trs []domain.TimeRegister
	err := r.db.Order("clock_in").Find(&trs).Error
	return trs, err
}

func (r *TimeRegisterRepo) ListByUser(userID uint) ([]domain.TimeRegister, error) {
	var trs []domain.TimeRegister
	err := r.db.Where("user_id = ?", userID).Order("clock_in").Find(&trs).Error
	return trs, err
}

func (r *TimeRegisterRepo) ListByUserInRange(userID uint, from, to time.Time) ([]domain.TimeRegister, error) {
	var trs []domain.TimeRegister
	err := r.db.
		Where("user_id = ? AND clock_in BETWEEN ? AND ?", userID, from, to).
		Order("clock_in").
		Find(&trs).Error
	return trs, err
}

func (r *TimeRegisterRepo) Update(tr *domain.TimeRegister) error { return r.db.Save(tr).Error }

func (r *TimeRegisterRepo) Delete(id uint) error {
	res := r.db.Delete(&domain.TimeRegister{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TimeRegisterRepo) FindOpenByUser(userID, excludeID uint) (*domain.TimeRegister, error) {
	q := r.db.Where("user_id = ? AND clock_out IS NULL", userID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var tr domain.TimeRegister
	err := q.First(&tr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tr, err
}
