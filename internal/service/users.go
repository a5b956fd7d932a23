package service

import (
	"context"
	"strings"

	"github.com/mbalagam/marketplace/internal/activity"
	"github.com/mbalagam/marketplace/internal/hash"
	"github.com/mbalagam/marketplace/internal/models"
	"github.com/mbalagam/marketplace/internal/store"
	"github.com/mbalagam/marketplace/internal/token"
)

type UserService struct {
	Store    *store.Store
	Activity *activity.Logger
	Tokens   *token.Issuer
}

func (s *UserService) Signup(ctx context.Context, username, email, password string) (*models.UserProfile, error) {
	if len(username) < 3 {
		return nil, &ValidationError{Detail: "username must be at least 3 characters"}
	}
	if !strings.Contains(email, "@") {
		return nil, &ValidationError{Detail: "invalid email address"}
	}
	if len(password) < 6 {
		return nil, &ValidationError{Detail: "password must be at least 6 characters"}
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var created models.User
	err = s.Store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Username == username {
				return nil, &ValidationError{Detail: "Username already registered"}
			}
			if u.Email == email {
				return nil, &ValidationError{Detail: "Email already registered"}
			}
		}
		created = models.User{
			ID:           nextUserID(users),
			Username:     username,
			Email:        email,
			PasswordHash: pwHash,
		}
		return append(users, created), nil
	})
	if err != nil {
		return nil, err
	}

	s.Activity.Event(ctx, "user_signup", created.Username, map[string]any{
		"user_id":  created.ID,
		"username": created.Username,
	})
	return profileOf(created), nil
}

// Login checks credentials and returns the profile plus a signed access token.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.UserProfile, string, error) {
	user, err := s.findUser(username)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !hash.CheckPassword(user.PasswordHash, password) {
		s.Activity.Event(ctx, "login_failed", username, map[string]any{"username": username})
		return nil, "", &AuthError{Detail: "Incorrect username or password"}
	}

	accessToken, err := s.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	s.Activity.Event(ctx, "user_login", user.Username, map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return profileOf(*user), accessToken, nil
}

func (s *UserService) GetUser(ctx context.Context, username string) (*models.UserProfile, error) {
	user, err := s.requireUser(username)
	if err != nil {
		return nil, err
	}
	return profileOf(*user), nil
}

func (s *UserService) findUser(username string) (*models.User, error) {
	return findUser(s.Store, username)
}

func (s *UserService) requireUser(username string) (*models.User, error) {
	return requireUser(s.Store, username)
}

func findUser(st *store.Store, username string) (*models.User, error) {
	users, err := st.LoadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

func requireUser(st *store.Store, username string) (*models.User, error) {
	user, err := findUser(st, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Detail: "User not found"}
	}
	return user, nil
}

func profileOf(u models.User) *models.UserProfile {
	return &models.UserProfile{ID: u.ID, Username: u.Username, Email: u.Email}
}

func nextUserID(users []models.User) int {
	next := 1
	for _, u := range users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	return next
}
