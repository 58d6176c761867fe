package service

import (
	"errors"

	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidRole      = errors.New("invalid role")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrSelfDeactivation = errors.New("cannot deactivate your own account")
)

// UpdateProfileInput carries the fields a user may change on themselves.
type UpdateProfileInput struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email" validate:"omitempty,email"`
	AvatarURL string `json:"avatar_url"`
}

// PreferencesInput carries notification and display preferences.
type PreferencesInput struct {
	Currency            string `json:"currency" validate:"omitempty,len=3"`
	EnableNotifications bool   `json:"enable_notifications"`
	EnableEmailAlerts   bool   `json:"enable_email_alerts"`
	EnableSMSAlerts     bool   `json:"enable_sms_alerts"`
}

// UserService covers admin-side user management plus self-service profile and
// preference updates.
type UserService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, log: log}
}

func (s *UserService) List() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func (s *UserService) Get(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetRole promotes or demotes a user. Only closed-set roles are accepted.
func (s *UserService) SetRole(id uuid.UUID, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive toggles an account. An admin cannot lock themselves out.
func (s *UserService) SetActive(id, actorID uuid.UUID, active bool) (*model.User, error) {
	if !active && id == actorID {
		return nil, ErrSelfDeactivation
	}
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(id uuid.UUID, in UpdateProfileInput) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(in.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = in.Email
	}
	if in.FullName != "" {
		user.FullName = in.FullName
	}
	user.AvatarURL = in.AvatarURL

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdatePreferences(id uuid.UUID, in PreferencesInput) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Currency != "" {
		user.Currency = in.Currency
	}
	user.EnableNotifications = in.EnableNotifications
	user.EnableEmailAlerts = in.EnableEmailAlerts
	user.EnableSMSAlerts = in.EnableSMSAlerts

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword requires the current password before accepting a new one.
func (s *UserService) ChangePassword(id uuid.UUID, current, next string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if !user.CheckPassword(current) {
		return ErrWrongPassword
	}
	if err := user.SetPassword(next); err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}
