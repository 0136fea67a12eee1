package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"marketplace-client/internal/dto"
	"marketplace-client/internal/pkg/logger"
	"marketplace-client/pkg/apiclient"
)

const (
	loginEndpoint    = "/auth/jwt/create/"
	verifyEndpoint   = "/auth/jwt/verify/"
	registerEndpoint = "/auth/register/"
	googleEndpoint   = "/auth/google/"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	GoogleLogin(ctx context.Context, idToken string) (*dto.LoginResponse, error)
	VerifyToken(ctx context.Context, token string) error
	Logout(ctx context.Context)
}

type authService struct {
	client   *apiclient.Client
	validate *validator.Validate
	log      logger.ILogger
}

func NewAuthService(client *apiclient.Client, log logger.ILogger) IAuthService {
	return &authService{
		client:   client,
		validate: validator.New(),
		log:      log,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid login request: %w", err)
	}

	var res dto.LoginResponse
	if err := s.client.Post(ctx, loginEndpoint, req, &res); err != nil {
		return nil, err
	}

	if res.Access != "" && res.Refresh != "" {
		if err := s.client.SetTokens(res.Access, res.Refresh); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
	}

	s.log.Info("auth", "login succeeded", map[string]interface{}{"username": req.Username})
	return &res, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid registration request: %w", err)
	}

	var res dto.RegisterResponse
	if err := s.client.Post(ctx, registerEndpoint, req, &res); err != nil {
		return nil, err
	}

	// Newer backends answer with a JWT pair, older ones with a single
	// legacy token that doubles as the access credential.
	switch {
	case res.Access != "" && res.Refresh != "":
		if err := s.client.SetTokens(res.Access, res.Refresh); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
	case res.Token != "":
		if err := s.client.SetTokens(res.Token, ""); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
	}

	return &res, nil
}

func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*dto.LoginResponse, error) {
	req := &dto.GoogleLoginRequest{IdToken: idToken}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid google login request: %w", err)
	}

	var res dto.LoginResponse
	if err := s.client.Post(ctx, googleEndpoint, req, &res); err != nil {
		return nil, err
	}

	if res.Access != "" && res.Refresh != "" {
		if err := s.client.SetTokens(res.Access, res.Refresh); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
	}

	return &res, nil
}

func (s *authService) VerifyToken(ctx context.Context, token string) error {
	return s.client.Post(ctx, verifyEndpoint, &dto.VerifyTokenRequest{Token: token}, nil)
}

func (s *authService) Logout(ctx context.Context) {
	s.client.ClearSession()
	s.log.Info("auth", "session cleared", nil)
}
