package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/speaktime/speaktime-api/internal/auth"
	"github.com/speaktime/speaktime-api/internal/model"
	"github.com/speaktime/speaktime-api/internal/repository"
	"github.com/speaktime/speaktime-api/internal/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
	Refresh(ctx context.Context, userID string) (string, error)
}

// RegisterParams defines the parameters for user registration. Field-level
// validation (email format, username and password policy) happens before the
// usecase is invoked.
type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// AuthResult carries the issued token and the authenticated user.
type AuthResult struct {
	Token string
	User  *model.User
}

var (
	ErrUserAlreadyExists = errors.New("email already in use")
	// ErrInvalidCredentials deliberately covers both an unknown email and a
	// wrong password so login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type authUsecase struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	hasher   security.Hasher
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	tokens *auth.TokenService,
	hasher security.Hasher,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	_, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	passwordHash, err := u.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	token, err := u.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := u.hasher.Verify(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (u *authUsecase) Refresh(ctx context.Context, userID string) (string, error) {
	return u.tokens.Issue(userID)
}
