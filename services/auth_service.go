// auth_service.go - Handles user registration and login

package services

import (
	"context"
	"errors"

	"go-commands-backend/apierrors"
	"go-commands-backend/models"
	"go-commands-backend/repository"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username is unknown, so a miss
// costs the same bcrypt work as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)

type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
	cost   int
}

func NewAuthService(users repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Register stores a new user with a bcrypt hash of password.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return apierrors.Internal(err)
	}
	if exists {
		return apierrors.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost) // Hash the password
	if err != nil {
		return apierrors.Internal(err)
	}
	user := &models.User{Username: username, Password: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) { // lost a race with a concurrent registration
			return apierrors.ErrUsernameTaken
		}
		return apierrors.Internal(err)
	}
	return nil
}

// Login checks the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password)) // Burn the same time as a real check
		return "", apierrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", apierrors.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apierrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", apierrors.Internal(err)
	}
	return token, nil
}
