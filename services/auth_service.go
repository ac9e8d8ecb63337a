package services

import (
	"jangbo/configs"
	"jangbo/entity"
	"jangbo/pkg/apperr"
	"jangbo/repository"
	"jangbo/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Cfg  *configs.Config
	Repo *repository.UserRepository
}

func NewAuthService(cfg *configs.Config, repo *repository.UserRepository) *AuthService {
	return &AuthService{Cfg: cfg, Repo: repo}
}

type RegisterIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=customer merchant"`
}

type LoginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthOut struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func (s *AuthService) Register(in *RegisterIn) (*AuthOut, error) {
	taken, err := s.Repo.EmailTaken(in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: in.Email, Password: string(hash), Name: in.Name, Role: in.Role}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *AuthService) Login(in *LoginIn) (*AuthOut, error) {
	u, err := s.Repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)) != nil {
		return nil, apperr.Validation("invalid email or password")
	}
	return s.issue(u)
}

func (s *AuthService) Me(userID uint) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (s *AuthService) issue(u *entity.User) (*AuthOut, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, s.Cfg.JWTSecret, s.Cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	return &AuthOut{Token: token, User: u}, nil
}
