// internal/app/system/authutil/authutil.go
// Package authutil provides centralized authentication field handling
// for user creation and editing forms.
package authutil

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"errors"
	"strings"
)

// CredentialInput holds the raw form values for auth-related fields.
type CredentialInput struct {
	LoginID  string
	Email    string
	Password string
	IsEdit   bool // If true, password is optional (leave blank to keep existing)
}

// CredentialResult holds the validated and processed auth fields ready for storage.
type CredentialResult struct {
	LoginID      string
	Email        *string // Optional email (set if provided)
	PasswordHash *string // bcrypt hash (set if password provided)
}

// Common validation errors
var (
	ErrInvalidEmail     = errors.New("Please enter a valid email address.")
	ErrLoginIDRequired  = errors.New("Login ID is required.")
	ErrPasswordRequired = errors.New("Password is required.")
)

// isValidEmail performs a basic email format validation.
// It checks for the presence of @ and at least one character on each side.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	// Local part must not be empty
	if len(parts[0]) == 0 {
		return false
	}
	// Domain must contain at least one dot after @
	domain := parts[1]
	dotIdx := strings.LastIndex(domain, ".")
	if dotIdx < 1 || dotIdx >= len(domain)-1 {
		return false
	}
	return true
}

// ValidateAndResolve validates the credential input and returns the
// resolved fields ready for storage. On edit, a blank password means
// keep the existing hash; on create, a password is required.
func ValidateAndResolve(input CredentialInput) (*CredentialResult, error) {
	result := &CredentialResult{}

	loginID := strings.TrimSpace(input.LoginID)
	if loginID == "" {
		return nil, ErrLoginIDRequired
	}
	result.LoginID = loginID

	if email := strings.TrimSpace(input.Email); email != "" {
		if !isValidEmail(email) {
			return nil, ErrInvalidEmail
		}
		result.Email = &email
	}

	if input.Password == "" {
		if !input.IsEdit {
			return nil, ErrPasswordRequired
		}
		return result, nil
	}

	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	result.PasswordHash = &hash

	return result, nil
}
