package domain

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TimeRegisters []TimeRegister `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reports       []Report       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(u *User) error
	FindByID(id uint) (*User, error)
	FindByEmail(email string) (*User, error)
	List() ([]User, error)
	Update(u *User) error
	Delete(id uint) error
}
