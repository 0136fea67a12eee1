package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"marketplace-client/internal/dto"
	"marketplace-client/pkg/apiclient"
)

const profileEndpoint = "/users/profile/"

type IUserService interface {
	Profile(ctx context.Context) (*dto.UserProfile, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserProfile, error)
}

type userService struct {
	client   *apiclient.Client
	validate *validator.Validate
}

func NewUserService(client *apiclient.Client) IUserService {
	return &userService{
		client:   client,
		validate: validator.New(),
	}
}

func (s *userService) Profile(ctx context.Context) (*dto.UserProfile, error) {
	var profile dto.UserProfile
	if err := s.client.GetUncached(ctx, profileEndpoint, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid profile update: %w", err)
	}

	var profile dto.UserProfile
	if err := s.client.Put(ctx, profileEndpoint, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
