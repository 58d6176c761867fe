// Command reset-password is an operator tool that force-resets a user's
// password directly in the database, for when the OTP flow is unavailable
// (lost phone, misconfigured SMS gateway).
package main

import (
	"flag"
	"log"

	"github.com/Innie12/Inventory-Management-System/internal/config"
	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	username := flag.String("username", "admin", "username of the account to reset")
	password := flag.String("password", "", "new password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg.DatabaseURL)

	// 3. Find the user
	var user model.User
	if err := db.Where("username = ?", *username).First(&user).Error; err != nil {
		log.Fatalf("user %q not found: %v", *username, err)
	}

	// 4. Hash and update
	if err := user.SetPassword(*password); err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Model(&user).Update("password", user.Password).Error; err != nil {
		log.Fatalf("failed to update password: %v", err)
	}

	// Invalidate any pending OTP at the same time.
	db.Model(&user).Updates(map[string]interface{}{"otp_code": "", "otp_expires": nil})

	log.Printf("password for %q has been reset", *username)
}
