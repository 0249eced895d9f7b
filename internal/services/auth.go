package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/types"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// TokenClaims is what a signed bearer token carries: the user id in the
// standard subject field plus the role used for query gating.
type TokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Register creates a user with a peppered bcrypt hash. The caller is
	// responsible for role gating.
	Register(ctx context.Context, input *types.UserInput, approvedBy uuid.UUID) (*types.User, error)
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	// ParseToken validates a bearer token and returns its claims.
	ParseToken(tokenString string) (*TokenClaims, error)
}

type AuthConfig struct {
	// JWTSecret signs tokens, HS256.
	JWTSecret string
	// PasswordPepper is appended to passwords before hashing.
	PasswordPepper string
	// TokenDuration is the validity window of issued tokens.
	TokenDuration time.Duration
}

type authService struct {
	log      *logger.Logger
	cfg      AuthConfig
	userRepo repos.UserRepo
}

func NewAuthService(log *logger.Logger, cfg AuthConfig, userRepo repos.UserRepo) AuthService {
	return &authService{
		log:      log.With("service", "AuthService"),
		cfg:      cfg,
		userRepo: userRepo,
	}
}

func (as *authService) Register(ctx context.Context, input *types.UserInput, approvedBy uuid.UUID) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, errors.New("email and password are required")
	}
	role, err := types.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password+as.cfg.PasswordPepper), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var approver *uuid.UUID
	if approvedBy != uuid.Nil {
		approver = &approvedBy
	}
	user, err := as.userRepo.Create(ctx, nil, &types.User{
		Hash:             string(hash),
		Email:            email,
		Role:             string(role),
		Name:             input.Name,
		ApprovedByUserID: approver,
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("Registered user", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if repos.IsNotFound(err) {
			// Same failure shape whether the email or the password
			// is wrong.
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password+as.cfg.PasswordPepper)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := as.sign(user)
	if err != nil {
		return "", nil, err
	}
	as.log.Debug("Issued token", "user_id", user.ID)
	return token, user, nil
}

func (as *authService) sign(user *types.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.cfg.TokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (as *authService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return []byte(as.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
