package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/speaktime/speaktime-api/internal/model"
	"github.com/speaktime/speaktime-api/internal/repository"
	"github.com/speaktime/speaktime-api/internal/security"
)

// UserUsecase defines the interface for user profile use cases. Profile
// reads and mutations are self-service: a user may only access their own
// record.
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, callerID, id string) (*model.User, error)
	UpdateUser(ctx context.Context, callerID, id string, params UpdateUserParams) (*model.User, error)
	DeleteUser(ctx context.Context, callerID, id string) error
}

// UpdateUserParams defines the optional profile fields to update. A new
// password is re-hashed before persisting.
type UpdateUserParams struct {
	Username *string
	Email    *string
	Password *string
}

var ErrUserNotFound = errors.New("user not found")

type userUsecase struct {
	userRepo repository.UserRepository
	hasher   security.Hasher
}

func NewUserUsecase(userRepo repository.UserRepository, hasher security.Hasher) UserUsecase {
	return &userUsecase{userRepo: userRepo, hasher: hasher}
}

func (u *userUsecase) ListUsers(ctx context.Context) ([]*model.User, error) {
	return u.userRepo.ListUsers(ctx)
}

func (u *userUsecase) GetUser(ctx context.Context, callerID, id string) (*model.User, error) {
	user, err := u.ownUser(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) UpdateUser(
	ctx context.Context,
	callerID, id string,
	params UpdateUserParams,
) (*model.User, error) {
	current, err := u.ownUser(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	// An update naming no fields leaves the profile as it is.
	if params.Username == nil && params.Email == nil && params.Password == nil {
		return current, nil
	}

	repoParams := repository.UpdateUserParams{
		Username: params.Username,
		Email:    params.Email,
	}
	if params.Password != nil {
		passwordHash, err := u.hasher.Hash(*params.Password)
		if err != nil {
			return nil, err
		}
		repoParams.PasswordHash = &passwordHash
	}

	user, err := u.userRepo.UpdateUser(ctx, id, repoParams)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Deleted between the ownership check and the write.
			return nil, ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	return user, nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, callerID, id string) error {
	if _, err := u.ownUser(ctx, callerID, id); err != nil {
		return err
	}

	if _, err := u.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	return nil
}

// ownUser fetches the target user and enforces the self-service rule. A
// missing user is reported before ownership is evaluated.
func (u *userUsecase) ownUser(ctx context.Context, callerID, id string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	if user.ID.Hex() != callerID {
		return nil, ErrNotOwner
	}

	return user, nil
}
