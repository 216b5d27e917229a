package services

import (
	"errors"
	"strings"

	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/app/repositories"
	"github.com/ucqdev/cuahquick/config"
	"github.com/ucqdev/cuahquick/pkg/apperr"
	"github.com/ucqdev/cuahquick/pkg/auth"
	"github.com/ucqdev/cuahquick/pkg/database"
	"github.com/ucqdev/cuahquick/pkg/event"
	"github.com/ucqdev/cuahquick/pkg/logger"

	"gorm.io/gorm"
)

// RegisterInput carries the registration form. Role is intentionally
// absent: every self-registered account is a client.
type RegisterInput struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	StudentID string `json:"student_id"`
}

// AuthService implements registration and login.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register validates the form, creates the account, and returns the new
// user together with a signed token. Validation fails fast in a fixed
// order so clients always see the first problem:
//
//  1. a required field is empty
//  2. the email is outside the institutional domain
//  3. the email's local part does not end in digits
//  4. the trailing digits differ from the submitted student ID
func (s *AuthService) Register(in RegisterInput) (models.User, string, error) {
	if in.FullName == "" || in.Email == "" || in.Password == "" || in.Phone == "" || in.StudentID == "" {
		return models.User{}, "", apperr.ErrMissingFields
	}

	domain := config.EmailDomain() // "@ucq.edu.mx"
	email := strings.ToLower(in.Email)
	if !strings.HasSuffix(email, domain) {
		return models.User{}, "", apperr.ErrInvalidDomain
	}

	local := strings.TrimSuffix(email, domain)
	emailID := trailingDigits(local)
	if emailID == "" {
		return models.User{}, "", apperr.ErrMissingStudentIDInEmail
	}
	// Exact string comparison. "007" and "7" are different student IDs.
	if emailID != in.StudentID {
		return models.User{}, "", apperr.ErrStudentIDMismatch
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		FullName:  in.FullName,
		Email:     email,
		Password:  hash,
		Phone:     in.Phone,
		Role:      models.RoleClient,
		StudentID: &in.StudentID,
	}
	if err := s.users.Create(&user); err != nil {
		var uv *database.UniqueViolation
		if errors.As(err, &uv) {
			// Do not reveal whether the email or the student ID collided.
			return models.User{}, "", apperr.ErrDuplicateUser
		}
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Role, user.Email)
	if err != nil {
		return models.User{}, "", err
	}

	logger.L.Info("user registered", "user_id", user.ID, "email", user.Email)
	event.Fire("user.registered", user)

	return user, token, nil
}

// Login checks the credentials and returns the user with a fresh token.
// Every failure mode maps to the same InvalidCredentials error so the
// response never discloses whether the email exists.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	if email == "" || password == "" {
		return models.User{}, "", apperr.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", apperr.ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", apperr.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role, user.Email)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

// trailingDigits returns the run of ASCII digits at the end of s, or ""
// when s does not end in a digit.
func trailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[i:]
}
