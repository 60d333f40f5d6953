package services

import (
	"errors"

	"petlink/internal/domain"
	"petlink/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// AuthService authenticates against two disjoint principal stores and keeps
// session rows in step. A user session is useless on owner routes and vice
// versa; the role travels with the session.
type AuthService struct {
	Principals *repos.PrincipalRepo
}

func (s *AuthService) RegisterUser(name, email, password, contact, address string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.Principals.CreateUser(name, email, string(hash), contact, address)
	return err
}

func (s *AuthService) LoginUser(sid, email, password string) (*domain.Session, error) {
	u, err := s.Principals.UserByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Principals.BindSession(sid, u.ID, domain.RoleUser, u.Name); err != nil {
		return nil, err
	}
	return &domain.Session{PrincipalID: u.ID, Role: domain.RoleUser, Name: u.Name}, nil
}

func (s *AuthService) LoginOwner(sid, email, password string) (*domain.Session, error) {
	o, err := s.Principals.OwnerByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(o.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Principals.BindSession(sid, o.ID, domain.RoleOwner, o.Name); err != nil {
		return nil, err
	}
	return &domain.Session{PrincipalID: o.ID, Role: domain.RoleOwner, Name: o.Name}, nil
}

func (s *AuthService) Current(sid string) (*domain.Session, error) {
	return s.Principals.Session(sid)
}

func (s *AuthService) Logout(sid string) error {
	return s.Principals.UnbindSession(sid)
}

// UpdateProfile edits a user's contact details and, when newPassword is
// non-empty, rehashes their credential. Session display names are refreshed
// so the header keeps showing the right name.
func (s *AuthService) UpdateProfile(userID int64, name, contact, address, newPassword string) error {
	if err := s.Principals.UpdateUser(userID, name, contact, address); err != nil {
		return err
	}
	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := s.Principals.UpdateUserPassword(userID, string(hash)); err != nil {
			return err
		}
	}
	return s.Principals.RenameSessions(userID, domain.RoleUser, name)
}

// DeleteUser removes a user account after re-checking their password.
func (s *AuthService) DeleteUser(userID int64, password string) error {
	u, err := s.Principals.UserByID(userID)
	if err != nil {
		return ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return ErrBadCreds
	}
	return s.Principals.DeleteUserCascade(userID)
}
