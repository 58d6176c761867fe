package model

import (
	"testing"
	"time"
)

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role            Role
		valid           bool
		admin           bool
		canManageUsers  bool
		canDelete       bool
		canViewAuditLog bool
	}{
		{RoleUser, true, false, false, false, false},
		{RoleManager, true, false, false, false, false},
		{RoleAdmin, true, true, true, true, true},
		{Role("superuser"), false, false, false, false, false},
		{Role(""), false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.role.IsAdmin(); got != tt.admin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.admin)
			}
			if got := tt.role.CanManageUsers(); got != tt.canManageUsers {
				t.Errorf("CanManageUsers() = %v, want %v", got, tt.canManageUsers)
			}
			if got := tt.role.CanDeleteRecords(); got != tt.canDelete {
				t.Errorf("CanDeleteRecords() = %v, want %v", got, tt.canDelete)
			}
			if got := tt.role.CanViewAuditLog(); got != tt.canViewAuditLog {
				t.Errorf("CanViewAuditLog() = %v, want %v", got, tt.canViewAuditLog)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	u := &User{}
	if err := u.SetPassword("s3cret-pass"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if u.Password == "s3cret-pass" {
		t.Error("password stored in plain text")
	}
	if !u.CheckPassword("s3cret-pass") {
		t.Error("correct password rejected")
	}
	if u.CheckPassword("wrong") {
		t.Error("wrong password accepted")
	}
}

func TestOTPLifecycle(t *testing.T) {
	u := &User{}

	code, err := u.GenerateOTP(10 * time.Minute)
	if err != nil {
		t.Fatalf("GenerateOTP: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	if !u.VerifyOTP(code) {
		t.Error("freshly generated OTP rejected")
	}
	if u.VerifyOTP("000000") && code != "000000" {
		t.Error("wrong OTP accepted")
	}

	u.ClearOTP()
	if u.VerifyOTP(code) {
		t.Error("cleared OTP still accepted")
	}
}

func TestOTPExpiry(t *testing.T) {
	u := &User{}
	code, err := u.GenerateOTP(-time.Minute) // already expired
	if err != nil {
		t.Fatalf("GenerateOTP: %v", err)
	}
	if u.VerifyOTP(code) {
		t.Error("expired OTP accepted")
	}
}

func TestE164Phone(t *testing.T) {
	tests := []struct {
		phone, want string
	}{
		{"09171234567", "+639171234567"},
		{"+639171234567", "+639171234567"},
		{"not-a-number", "not-a-number"}, // unparseable falls back to raw
	}
	for _, tt := range tests {
		u := &User{Phone: tt.phone}
		if got := u.E164Phone("PH"); got != tt.want {
			t.Errorf("E164Phone(%q) = %q, want %q", tt.phone, got, tt.want)
		}
	}
}

func TestProductLowStockBoundary(t *testing.T) {
	tests := []struct {
		quantity, reorderLevel int
		want                   bool
	}{
		{11, 10, false}, // one above threshold
		{10, 10, true},  // exactly at threshold
		{9, 10, true},
		{0, 10, true},
		{-3, 10, true}, // quantity may go negative
	}
	for _, tt := range tests {
		p := &Product{Quantity: tt.quantity, ReorderLevel: tt.reorderLevel}
		if got := p.IsLowStock(); got != tt.want {
			t.Errorf("IsLowStock() with qty=%d level=%d = %v, want %v",
				tt.quantity, tt.reorderLevel, got, tt.want)
		}
	}
}
