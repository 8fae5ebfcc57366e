package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"roomify-backend/models"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Principal roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is an authenticated identity, either a User or an Admin, tagged
// with its role. It travels with the request instead of living in any shared
// process state.
type Principal struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenClaims are the JWT claims issued on login.
type TokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	DB       *gorm.DB
	jwtKey   []byte
	tokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, jwtKey string) *AuthService {
	return &AuthService{
		DB:       db,
		jwtKey:   []byte(jwtKey),
		tokenTTL: 24 * time.Hour,
	}
}

// isDuplicateKey recognizes unique-constraint violations from MySQL (1062)
// and from the SQLite driver used in tests.
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Register creates a new user. A second registration with the same email
// fails with a conflict and leaves the first user untouched.
func (s *AuthService) Register(ctx context.Context, name, email, phone, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: a user with email %s already exists", ErrConflict, email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: checking existing user: %v", ErrPersistence, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %v", ErrPersistence, err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: string(hash),
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		// The pre-check above races with concurrent registrations; the unique
		// index is the authority.
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: a user with email %s already exists", ErrConflict, email)
		}
		return nil, fmt.Errorf("%w: creating user: %v", ErrPersistence, err)
	}
	return &user, nil
}

// Authenticate resolves credentials against the user store first and the
// admin store second. That order is load-bearing: an email present in both
// stores logs in as a user.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (Principal, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Principal{}, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return Principal{}, "", ErrAuth
		}
		return s.issueToken(Principal{ID: user.ID, Name: user.Name, Email: user.Email, Role: RoleUser})
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return Principal{}, "", fmt.Errorf("%w: looking up user: %v", ErrPersistence, err)
	}

	var admin models.Admin
	err = s.DB.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
			return Principal{}, "", ErrAuth
		}
		return s.issueToken(Principal{ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: RoleAdmin})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Principal{}, "", ErrAuth
	default:
		return Principal{}, "", fmt.Errorf("%w: looking up admin: %v", ErrPersistence, err)
	}
}

func (s *AuthService) issueToken(p Principal) (Principal, string, error) {
	now := time.Now()
	claims := TokenClaims{
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(p.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return Principal{}, "", fmt.Errorf("%w: signing token: %v", ErrPersistence, err)
	}
	return p, token, nil
}

// VerifyToken parses a bearer token back into the principal it was issued
// for. No store lookup: the claims carry everything the request needs.
func (s *AuthService) VerifyToken(tokenString string) (Principal, error) {
	var claims TokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrAuth
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return Principal{}, ErrAuth
	}
	return Principal{
		ID:    uint(id),
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
