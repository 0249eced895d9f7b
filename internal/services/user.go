package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/types"
)

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
	// EnsureAdmin creates the bootstrap admin account if the email is not
	// registered yet. Called once at startup when ADMIN_EMAIL is set.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	auth     AuthService
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo, auth AuthService) UserService {
	return &userService{
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
		auth:     auth,
	}
}

func (us *userService) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	return us.userRepo.GetByID(ctx, nil, id)
}

func (us *userService) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	return us.userRepo.GetByEmail(ctx, nil, email)
}

func (us *userService) List(ctx context.Context) ([]*types.User, error) {
	return us.userRepo.List(ctx, nil)
}

func (us *userService) EnsureAdmin(ctx context.Context, email, password string) error {
	exists, err := us.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	user, err := us.auth.Register(ctx, &types.UserInput{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     string(types.RoleAdmin),
	}, uuid.Nil)
	if err != nil {
		return err
	}
	us.log.Info("Bootstrapped admin account", "user_id", user.ID)
	return nil
}
