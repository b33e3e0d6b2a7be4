package services

import (
	"context"
	"errors"
	"time"

	"poolbet/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	verifier  *IdentityVerifier
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, verifier *IdentityVerifier, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		verifier:  verifier,
		jwtSecret: []byte(jwtSecret),
	}
}

type CreateUserRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

// SignIn exchanges a provider access token for a session token, creating the
// user on first sign-in.
func (s *AuthService) SignIn(ctx context.Context, accessToken string) (string, error) {
	info, err := s.verifier.FetchUserInfo(ctx, accessToken)
	if err != nil {
		return "", err
	}

	user, err := s.findOrCreateUser(info)
	if err != nil {
		return "", err
	}

	return s.GenerateToken(user)
}

// findOrCreateUser looks a user up by provider id and creates one if absent.
// The read-then-create sequence is not atomic: a duplicate-key error on the
// insert means a concurrent request created the user first, so re-fetch it.
func (s *AuthService) findOrCreateUser(info *UserInfo) (*models.User, error) {
	var user models.User
	err := s.db.Where("google_id = ?", info.ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		GoogleID:  info.ID,
		Name:      info.Name,
		Email:     info.Email,
		AvatarURL: info.Picture,
	}
	err = s.db.Create(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("google_id = ?", info.ID).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"name":      user.Name,
		"avatarUrl": user.AvatarURL,
		"exp":       now.Add(24 * time.Hour).Unix(),
		"iat":       now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("invalid subject in token")
	}

	return sub, nil
}
