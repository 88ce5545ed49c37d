package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/apperror"
	"github.com/kodamai/recruitr/internal/config"
	"github.com/kodamai/recruitr/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

type AuthUsecase struct {
	userRepo UserStore
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthUsecase(userRepo UserStore) *AuthUsecase {
	cfg := config.LoadAuthConfig()
	return &AuthUsecase{
		userRepo: userRepo,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: time.Duration(cfg.TokenTTLMinute) * time.Minute,
	}
}

func (uc *AuthUsecase) Register(email, fullName, password, role string) (*model.User, error) {
	if role != model.RoleApplicant && role != model.RoleHiringManager {
		return nil, apperror.InvalidInput("unknown role " + role)
	}

	if _, err := uc.userRepo.FindUserByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashed,
		Role:           role,
		IsActive:       true,
	}
	if err := uc.userRepo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a bearer token with the
// user id as subject.
func (uc *AuthUsecase) Login(email, password string) (string, *model.User, error) {
	user, err := uc.userRepo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperror.Unauthorized("incorrect email or password")
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, apperror.Unauthorized("account is inactive")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), truncateForBcrypt(password)); err != nil {
		return "", nil, apperror.Unauthorized("incorrect email or password")
	}

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(uc.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ParseToken validates the bearer token and returns the user id it was
// issued for.
func (uc *AuthUsecase) ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return uc.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperror.Unauthorized("could not validate credentials")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, apperror.Unauthorized("could not validate credentials")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("could not validate credentials")
	}
	return userID, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncateForBcrypt(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// bcrypt rejects inputs over 72 bytes.
func truncateForBcrypt(password string) []byte {
	b := []byte(password)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}
