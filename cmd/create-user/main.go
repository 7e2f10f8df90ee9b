package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/egrafes/egrafes-backend/internal/config"
	"github.com/egrafes/egrafes-backend/internal/logger"
	"github.com/egrafes/egrafes-backend/internal/model"
	"github.com/egrafes/egrafes-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	credentialRepo := repository.NewCredentialRepository(cfg.UsersFile)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Staff User ===")

	// Username
	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Error: Username is required")
		return
	}

	// School name
	fmt.Print("Enter School Name: ")
	schoolName, _ := reader.ReadString('\n')
	schoolName = strings.TrimSpace(schoolName)
	if schoolName == "" {
		fmt.Println("Error: School Name is required")
		return
	}

	// School code
	fmt.Print("Enter School Code: ")
	schoolCode, _ := reader.ReadString('\n')
	schoolCode = strings.TrimSpace(schoolCode)
	if schoolCode == "" {
		fmt.Println("Error: School Code is required")
		return
	}

	// Data file (defaults to students_<username>.json)
	fmt.Printf("Enter Data Filename (default students_%s.json): ", username)
	dataFile, _ := reader.ReadString('\n')
	dataFile = strings.TrimSpace(dataFile)
	if dataFile == "" {
		dataFile = fmt.Sprintf("students_%s.json", username)
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	entry := &model.CredentialEntry{
		Username:     username,
		PasswordHash: string(hashedPassword),
		SchoolName:   schoolName,
		SchoolCode:   schoolCode,
		DataFile:     dataFile,
	}

	if err := credentialRepo.Upsert(entry); err != nil {
		log.Fatal().Err(err).Msg("Failed to write credential entry")
	}

	fmt.Printf("\nSuccess! User '%s' for school '%s' (%s) now writes to %s\n",
		entry.Username, entry.SchoolName, entry.SchoolCode, entry.DataFile)
}
