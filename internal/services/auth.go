package services

import (
	"errors"
	"time"

	"bigbrain-backend/internal/apperr"
	"bigbrain-backend/internal/gate"
	"bigbrain-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	gates     *gate.Gates
}

func NewAuthService(db *gorm.DB, jwtSecret string, gates *gate.Gates) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret), gates: gates}
}

func (s *AuthService) Register(email, password, name string) (string, error) {
	var token string
	err := s.gates.Auth.Do(func() error {
		var existing models.Admin
		if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
			return apperr.Input("Email address already registered")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		admin := models.Admin{
			Email:         email,
			Name:          name,
			PasswordHash:  string(hash),
			SessionActive: true,
		}
		if err := s.db.Create(&admin).Error; err != nil {
			return err
		}

		token, err = s.GenerateToken(admin.Email)
		return err
	})
	return token, err
}

func (s *AuthService) Login(email, password string) (string, error) {
	var token string
	err := s.gates.Auth.Do(func() error {
		var admin models.Admin
		if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
			return apperr.Input("Invalid email or password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
			return apperr.Input("Invalid email or password")
		}
		if err := s.db.Model(&admin).Update("session_active", true).Error; err != nil {
			return err
		}

		var err error
		token, err = s.GenerateToken(admin.Email)
		return err
	})
	return token, err
}

func (s *AuthService) Logout(email string) error {
	return s.gates.Auth.Do(func() error {
		return s.db.Model(&models.Admin{}).
			Where("email = ?", email).
			Update("session_active", false).Error
	})
}

func (s *AuthService) GenerateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken verifies a bearer token and resolves it to the admin it
// was issued for. The admin must still have an active login session.
func (s *AuthService) ValidateToken(tokenString string) (*models.Admin, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Access("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Access("Invalid token")
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, apperr.Access("Invalid token")
	}

	var admin models.Admin
	if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, apperr.Access("Invalid token")
	}
	if !admin.SessionActive {
		return nil, apperr.Access("Invalid token")
	}
	return &admin, nil
}
