package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/will-terra/teste-time-register/internal/domain"
	"github.com/will-terra/teste-time-register/internal/repo"
)

// TimeRegisterService guards the time-register writes. The single-open-
// register check is check-then-act, so every write runs in a transaction
// holding the owning user row; the partial unique index installed by the
// database package converts any remaining race into a write conflict.
type TimeRegisterService struct {
	db *gorm.DB
}

func NewTimeRegisterService(db *gorm.DB) *TimeRegisterService {
	return &TimeRegisterService{db: db}
}

type TimeRegisterInput struct {
	UserID   uint       `json:"user_id"`
	ClockIn  *time.Time `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`
}

func (s *TimeRegisterService) Create(in TimeRegisterInput) (*domain.TimeRegister, error) {
	if in.ClockIn == nil {
		return nil, domain.Validationf("clock_in is required")
	}
	tr := &domain.TimeRegister{
		UserID:   in.UserID,
		ClockIn:  *in.ClockIn,
		ClockOut: in.ClockOut,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.validate(tx, tr); err != nil {
			return err
		}
		if err := repo.NewTimeRegisterRepo(tx).Create(tr); err != nil {
			return mapWriteErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

func (s *TimeRegisterService) Update(id uint, in TimeRegisterInput) (*domain.TimeRegister, error) {
	var tr *domain.TimeRegister
	err := s.db.Transaction(func(tx *gorm.DB) error {
		registers := repo.NewTimeRegisterRepo(tx)
		var err error
		tr, err = registers.FindByID(id)
		if err != nil {
			return err
		}
		if tr == nil {
			return domain.NotFound("Time register")
		}
		if in.UserID != 0 {
			tr.UserID = in.UserID
		}
		if in.ClockIn != nil {
			tr.ClockIn = *in.ClockIn
		}
		if in.ClockOut != nil {
			tr.ClockOut = in.ClockOut
		}
		if err := s.validate(tx, tr); err != nil {
			return err
		}
		if err := registers.Update(tr); err != nil {
			return mapWriteErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

func (s *TimeRegisterService) Get(id uint) (*domain.TimeRegister, error) {
	tr, err := repo.NewTimeRegisterRepo(s.db).FindByID(id)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, domain.NotFound("Time register")
	}
	return tr, nil
}

func (s *TimeRegisterService) List() ([]domain.TimeRegister, error) {
	return repo.NewTimeRegisterRepo(s.db).List()
}

func (s *TimeRegisterService) ListByUser(userID uint) ([]domain.TimeRegister, error) {
	return repo.NewTimeRegisterRepo(s.db).ListByUser(userID)
}

func (s *TimeRegisterService) Delete(id uint) error {
	err := repo.NewTimeRegisterRepo(s.db).Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound("Time register")
	}
	return err
}

// validate enforces the register invariants: the owning user exists,
// clock_out (when present) is strictly after clock_in, and at most one
// open register per user. The user row is locked FOR UPDATE so two
// concurrent open-register writes for the same user serialize.
func (s *TimeRegisterService) validate(tx *gorm.DB, tr *domain.TimeRegister) error {
	q := tx
	// sqlite has no FOR UPDATE; its single writer serializes anyway.
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var user domain.User
	err := q.First(&user, "id = ?", tr.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound("User")
	}
	if err != nil {
		return err
	}

	if tr.ClockOut != nil && !tr.ClockOut.After(tr.ClockIn) {
		return domain.Validationf("clock_out must be after clock in time")
	}
	if tr.ClockOut == nil {
		open, err := repo.NewTimeRegisterRepo(tx).FindOpenByUser(tr.UserID, tr.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.Validationf("User already has an open time register")
		}
	}
	return nil
}

// mapWriteErr surfaces a unique-index conflict on the open-register
// column as the same validation failure the in-transaction check raises.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") {
		return domain.Validationf("User already has an open time register")
	}
	return err
}
