package service

import (
	"context"
	"errors"
	"time"

	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"
	"github.com/Innie12/Inventory-Management-System/pkg/jwt"
	"github.com/Innie12/Inventory-Management-System/pkg/sms"

	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrPhoneTaken         = errors.New("phone number is already registered")
	ErrInvalidOTP         = errors.New("invalid or expired verification code")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// RegisterInput is the self-registration payload. Role is not part of it;
// everyone starts as a regular user and an admin promotes them later.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
}

// AuthService handles registration, login and the OTP-based password
// recovery flow.
type AuthService struct {
	userRepo    repository.UserRepository
	smsSender   sms.Sender
	otpExpiry   time.Duration
	phoneRegion string
	log         *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	smsSender sms.Sender,
	otpExpiry time.Duration,
	phoneRegion string,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		smsSender:   smsSender,
		otpExpiry:   otpExpiry,
		phoneRegion: phoneRegion,
		log:         log,
	}
}

// normalizePhone converts to E.164 so lookups and gateway calls agree on one
// canonical form. Unparseable input is kept as typed.
func (s *AuthService) normalizePhone(phone string) string {
	parsed, err := phonenumbers.Parse(phone, s.phoneRegion)
	if err != nil {
		return phone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

func (s *AuthService) Register(in RegisterInput) (*model.User, error) {
	// 1. Uniqueness checks on every identity column.
	if _, err := s.userRepo.FindByUsername(in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	phone := s.normalizePhone(in.Phone)
	if _, err := s.userRepo.FindByPhone(phone); err == nil {
		return nil, ErrPhoneTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. Create the user.
	user := &model.User{
		Username: in.Username,
		Email:    in.Email,
		Phone:    phone,
		FullName: in.FullName,
		Role:     model.RoleUser,
		IsActive: true,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("username", user.Username))
	return user, nil
}

// Login checks credentials and returns a session token. Disabled accounts are
// told apart from bad credentials; the account exists and the password was
// right, the operator just switched it off.
func (s *AuthService) Login(username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrAccountDisabled
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Email, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		s.log.Warn("failed to record last login", zap.Error(err))
	}
	return token, user, nil
}

// ForgotPassword starts the recovery flow: generate an OTP and text it to the
// account's phone. It always reports success so callers cannot probe which
// phone numbers have accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, phone string) error {
	user, err := s.userRepo.FindByPhone(s.normalizePhone(phone))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	code, err := user.GenerateOTP(s.otpExpiry)
	if err != nil {
		return err
	}
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	if err := s.smsSender.SendOTP(ctx, user.E164Phone(s.phoneRegion), code); err != nil {
		s.log.Error("failed to send otp", zap.Error(err))
		return err
	}
	return nil
}

// VerifyOTP trades a valid code for a short-lived reset token scoped to
// password resets only. The code stays consumable until the reset completes,
// so a dropped connection after verification is recoverable.
func (s *AuthService) VerifyOTP(phone, code string) (string, error) {
	user, err := s.userRepo.FindByPhone(s.normalizePhone(phone))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidOTP
		}
		return "", err
	}
	if !user.VerifyOTP(code) {
		return "", ErrInvalidOTP
	}
	return jwt.GenerateResetToken(user.ID, s.otpExpiry)
}

// ResetPassword consumes a reset token, sets the new password and clears the
// OTP so neither the code nor the token can be replayed.
func (s *AuthService) ResetPassword(resetToken, newPassword string) error {
	userID, err := jwt.ValidateResetToken(resetToken)
	if err != nil {
		return ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	user.ClearOTP()
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	s.log.Info("password reset completed", zap.String("username", user.Username))
	return nil
}
