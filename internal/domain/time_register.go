package domain

import "time"

// TimeRegister is one clock-in/clock-out interval. A nil ClockOut means
// the interval is still open; a user may have at most one open register.
type TimeRegister struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	ClockIn   time.Time  `gorm:"not null;index" json:"clock_in"`
	ClockOut  *time.Time `json:"clock_out"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (TimeRegister) TableName() string { return "time_registers" }

func (t *TimeRegister) Open() bool { return t.ClockOut == nil }

// Duration is the worked wall-clock time; zero while the register is open.
func (t *TimeRegister) Duration() time.Duration {
	if t.ClockOut == nil {
		return 0
	}
	return t.ClockOut.Sub(t.ClockIn)
}

type TimeRegisterRepository interface {
	Create(tr *TimeRegister) error
	FindByID(id uint) (*TimeRegister, error)
	List() ([]TimeRegister, error)
	ListByUser(userID uint) ([]TimeRegister, error)
	// ListByUserInRange returns registers whose clock_in falls inside
	// [from, to], ordered ascending by clock_in.
	ListByUserInRange(userID uint, from, to time.Time) ([]TimeRegister, error)
	Update(tr *TimeRegister) error
	Delete(id uint) error
	// FindOpenByUser returns the user's open register excluding
	// excludeID (0 to exclude nothing), or nil when there is none.
	FindOpenByUser(userID, excludeID uint) (*TimeRegister, error)
}
