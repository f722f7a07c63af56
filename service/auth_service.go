package service

import (
	"dashboard/auth"
	"dashboard/customerrors"
	"dashboard/model"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(username, password string) (string, *model.UserDto, error)
}

// AuthServiceImpl checks credentials against the single configured admin
type AuthServiceImpl struct {
	adminUser    string
	passwordHash []byte
}

func NewAuthService(adminUser, passwordHash string) AuthService {
	return &AuthServiceImpl{
		adminUser:    adminUser,
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
	}
}

func (s *AuthServiceImpl) Login(username, password string) (string, *model.UserDto, error) {
	if s.adminUser == "" || len(s.passwordHash) == 0 || username != s.adminUser {
		return "", nil, customerrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", nil, customerrors.ErrInvalidCredentials
	}

	user := &model.UserDto{Username: username, Role: model.RoleAdmin}
	token, err := auth.GenerateToken(*user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
