package service

import (
	"regexp"
	"strings"

	"github.com/will-terra/teste-time-register/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *UserService) Create(in UserInput) (*domain.User, error) {
	u := &domain.User{Name: strings.TrimSpace(in.Name), Email: strings.TrimSpace(in.Email)}
	if err := s.validate(u); err != nil {
		return nil, err
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Update(id uint, in UserInput) (*domain.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		u.Name = strings.TrimSpace(in.Name)
	}
	if in.Email != "" {
		u.Email = strings.TrimSpace(in.Email)
	}
	if err := s.validate(u); err != nil {
		return nil, err
	}
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Get(id uint) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("User")
	}
	return u, nil
}

func (s *UserService) List() ([]domain.User, error) { return s.users.List() }

func (s *UserService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.users.Delete(id)
}

func (s *UserService) validate(u *domain.User) error {
	if u.Name == "" {
		return domain.Validationf("name can't be blank")
	}
	if u.Email == "" {
		return domain.Validationf("email can't be blank")
	}
	if !emailRe.MatchString(u.Email) {
		return domain.Validationf("email is invalid")
	}
	other, err := s.users.FindByEmail(u.Email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != u.ID {
		return domain.Validationf("email has already been taken")
	}
	return nil
}
