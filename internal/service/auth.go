package service

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sshperkin/travel-agency/internal/model"
	"github.com/sshperkin/travel-agency/pkg/jwtutil"
)

// dummyHash is compared against when the username is unknown, so a failed
// lookup costs the same as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Session is the in-memory proof of a successful authentication
type Session struct {
	Token    string    `json:"token"`
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	IssuedAt time.Time `json:"issued_at"`
}

// AuthService verifies credentials and manages user accounts
type AuthService struct {
	db         *gorm.DB
	bcryptCost int
}

// NewAuthService creates the authentication service. cost <= 0 selects
// bcrypt.DefaultCost.
func NewAuthService(db *gorm.DB, cost int) *AuthService {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{db: db, bcryptCost: cost}
}

// Authenticate verifies a username/password pair and issues a session.
// Unknown user, wrong password and disabled account all fail with
// ErrInvalidCredentials.
func (s *AuthService) Authenticate(username, password string) (*Session, error) {
	var user model.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, wrapPersistence("authenticate", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, wrapPersistence("issue session token", err)
	}

	return &Session{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		IssuedAt: time.Now(),
	}, nil
}

// RegisterUserInput carries the fields for creating a user account
type RegisterUserInput struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	EmployeeID *uint  `json:"employee_id,omitempty"`
}

// Register creates a new user account with a hashed password
func (s *AuthService) Register(input RegisterUserInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		return nil, NewValidationError("username", "is required")
	}
	if len(input.Password) < 8 {
		return nil, NewValidationError("password", "must be at least 8 characters")
	}
	if input.Role == "" {
		input.Role = model.RoleManager
	}
	if input.Role != model.RoleManager && input.Role != model.RoleAdmin {
		return nil, NewValidationError("role", "must be manager or admin")
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
		return nil, wrapPersistence("check username", err)
	}
	if count > 0 {
		return nil, NewValidationError("username", "already taken")
	}

	if input.EmployeeID != nil {
		var employee model.Employee
		if err := s.db.First(&employee, *input.EmployeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("employee_id", "employee does not exist")
			}
			return nil, wrapPersistence("check employee", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, wrapPersistence("hash password", err)
	}

	user := model.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
		EmployeeID:   input.EmployeeID,
		IsActive:     true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, wrapPersistence("create user", err)
	}
	return &user, nil
}

// ChangePassword replaces a user's password after verifying the current one
func (s *AuthService) ChangePassword(userID uint, current, next string) error {
	if len(next) < 8 {
		return NewValidationError("new_password", "must be at least 8 characters")
	}

	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return wrapPersistence("load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return wrapPersistence("hash password", err)
	}

	if err := s.db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		return wrapPersistence("update password", err)
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account when no user exists yet.
// It does nothing when password is empty or any account is already present.
func (s *AuthService) EnsureAdmin(username, password string) error {
	if password == "" {
		return nil
	}
	var count int64
	if err := s.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return wrapPersistence("count users", err)
	}
	if count > 0 {
		return nil
	}
	_, err := s.Register(RegisterUserInput{
		Username: username,
		Password: password,
		Role:     model.RoleAdmin,
	})
	return err
}
