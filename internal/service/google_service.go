package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"marketplace-client/internal/config"
)

// IGoogleSignIn obtains the Google ID token that the backend's federated
// login endpoint expects. The exchange happens against Google directly;
// the resulting id_token is then handed to AuthService.GoogleLogin.
type IGoogleSignIn interface {
	LoginURL() (url, state string, err error)
	ExchangeIDToken(ctx context.Context, code string) (string, error)
}

type googleSignIn struct {
	conf *oauth2.Config
}

func NewGoogleSignIn(keys config.APIKeys) IGoogleSignIn {
	return &googleSignIn{
		conf: &oauth2.Config{
			ClientID:     keys.GoogleClientID,
			ClientSecret: keys.GoogleClientSecret,
			RedirectURL:  keys.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (g *googleSignIn) LoginURL() (string, string, error) {
	if g.conf.ClientID == "" {
		return "", "", errors.New("google sign-in is not configured")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	// Unpadded so the state survives URL query encoding verbatim.
	state := base64.RawURLEncoding.EncodeToString(b)

	return g.conf.AuthCodeURL(state), state, nil
}

func (g *googleSignIn) ExchangeIDToken(ctx context.Context, code string) (string, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange failed: %w", err)
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", errors.New("no id_token in google response")
	}
	return idToken, nil
}
