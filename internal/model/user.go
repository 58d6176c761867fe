package model

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of user roles. Capability checks are methods on the
// variant rather than string comparisons scattered around the codebase.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// CanManageUsers covers user listing, edits and activation toggles.
func (r Role) CanManageUsers() bool { return r == RoleAdmin }

// CanDeleteRecords covers soft deletion of products, categories and suppliers.
func (r Role) CanDeleteRecords() bool { return r == RoleAdmin }

// CanViewAuditLog restricts the audit trail viewer.
func (r Role) CanViewAuditLog() bool { return r == RoleAdmin }

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Username string `gorm:"type:varchar(80);uniqueIndex;not null" json:"username" validate:"required,min=3"`
	Email    string `gorm:"type:varchar(120);uniqueIndex;not null" json:"email" validate:"required,email"`
	Phone    string `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone" validate:"required"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON

	// Profile
	FullName  string `gorm:"type:varchar(150)" json:"full_name"`
	AvatarURL string `gorm:"type:varchar(255)" json:"avatar_url,omitempty"`

	// Role & Status
	Role       Role `gorm:"type:varchar(20);default:'user'" json:"role"`
	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsVerified bool `gorm:"default:false" json:"is_verified"`

	// OTP for password reset (transient, cleared after a successful reset)
	OTPCode    string     `gorm:"type:varchar(6)" json:"-"`
	OTPExpires *time.Time `json:"-"`

	// Preferences
	Currency            string `gorm:"type:varchar(3);default:'PHP'" json:"currency"`
	EnableNotifications bool   `gorm:"default:true" json:"enable_notifications"`
	EnableEmailAlerts   bool   `gorm:"default:false" json:"enable_email_alerts"`
	EnableSMSAlerts     bool   `gorm:"default:false" json:"enable_sms_alerts"`

	LastLogin *time.Time `json:"last_login,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// GenerateOTP sets a fresh 6-digit code with the given validity window and
// returns it for delivery. The code is stored on the user, not returned to
// API clients.
func (u *User) GenerateOTP(ttl time.Duration) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())
	expires := time.Now().Add(ttl)
	u.OTPCode = code
	u.OTPExpires = &expires
	return code, nil
}

// VerifyOTP checks the submitted code against the stored one, honoring expiry.
func (u *User) VerifyOTP(code string) bool {
	if u.OTPCode == "" || u.OTPExpires == nil {
		return false
	}
	if time.Now().After(*u.OTPExpires) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.OTPCode), []byte(code)) == 1
}

// ClearOTP removes the transient reset code.
func (u *User) ClearOTP() {
	u.OTPCode = ""
	u.OTPExpires = nil
}

// E164Phone formats the stored phone number to E.164 using the given default
// region for local numbers. Falls back to the raw value when unparseable.
func (u *User) E164Phone(region string) string {
	parsed, err := phonenumbers.Parse(u.Phone, region)
	if err != nil {
		return u.Phone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	FullName            string     `json:"full_name"`
	AvatarURL           string     `json:"avatar_url,omitempty"`
	Role                Role       `json:"role"`
	IsActive            bool       `json:"is_active"`
	IsVerified          bool       `json:"is_verified"`
	Currency            string     `json:"currency"`
	EnableNotifications bool       `json:"enable_notifications"`
	EnableEmailAlerts   bool       `json:"enable_email_alerts"`
	EnableSMSAlerts     bool       `json:"enable_sms_alerts"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		Phone:               u.Phone,
		FullName:            u.FullName,
		AvatarURL:           u.AvatarURL,
		Role:                u.Role,
		IsActive:            u.IsActive,
		IsVerified:          u.IsVerified,
		Currency:            u.Currency,
		EnableNotifications: u.EnableNotifications,
		EnableEmailAlerts:   u.EnableEmailAlerts,
		EnableSMSAlerts:     u.EnableSMSAlerts,
		LastLogin:           u.LastLogin,
		CreatedAt:           u.CreatedAt,
	}
}
