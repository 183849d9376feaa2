package services

import (
	"github.com/mis883/janus-pharma-portal/internal/domain"
	"github.com/mis883/janus-pharma-portal/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users *repos.UserRepo
}

// Login checks credentials and binds the session. A blocked account is
// denied even with a correct password.
func (s *AuthService) Login(sid, username, password string) (*domain.User, error) {
	u, err := s.Users.ByUsername(username)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if u.IsBlocked {
		return nil, ErrBlocked
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
