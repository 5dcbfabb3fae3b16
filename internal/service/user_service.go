package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"qr_quiz_backend/internal/model"
	"qr_quiz_backend/internal/repository"
	"qr_quiz_backend/internal/util"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	AttemptRepo *repository.AttemptRepository
	Storage     *StorageService
}

func NewUserService(userRepo *repository.UserRepository, attemptRepo *repository.AttemptRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, AttemptRepo: attemptRepo, Storage: storage}
}

type Profile struct {
	User        *model.User `json:"user"`
	TotalPoints int         `json:"total_points"`
}

func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	total, err := s.AttemptRepo.SumScoreByUser(userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, TotalPoints: total}, nil
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	user.Name = strings.TrimSpace(req.Name)
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", util.ErrUserNotFound
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := fmt.Sprintf("avatars/%d_%d%s", userID, time.Now().Unix(), filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) ListAttempts(userID uint, limit int) ([]model.QuizAttempt, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.AttemptRepo.ListByUser(userID, limit)
}

func (s *UserService) ListUsers(page, limit int, role string) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit, role)
}

func (s *UserService) ChangeRole(id uint, role model.UserRole) error {
	switch role {
	case model.Admin, model.Creator, model.Student:
	default:
		return util.ErrPermissionDenied
	}
	if _, err := s.UserRepo.FindByID(id); err != nil {
		return util.ErrUserNotFound
	}
	return s.UserRepo.UpdateRole(id, role)
}

func (s *UserService) DeleteUser(id uint) error {
	if _, err := s.UserRepo.FindByID(id); err != nil {
		return util.ErrUserNotFound
	}
	return s.UserRepo.Delete(id)
}
