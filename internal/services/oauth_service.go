package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"pressroom_backend/internal/auth"
	"pressroom_backend/internal/config"
	"pressroom_backend/internal/models"
	"pressroom_backend/internal/repositories"
	"pressroom_backend/internal/services/dto"
	"pressroom_backend/pkg/apperrors"
)

const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

type OAuthService interface {
	// AuthURL returns the provider consent page URL for the given CSRF
	// state.
	AuthURL(provider, state string) (string, error)
	// Exchange trades an authorization code for a local session. Users
	// are created on first login with the base User role.
	Exchange(ctx context.Context, db *gorm.DB, provider, code string) (*dto.LoginResponse, error)
}

type oauthService struct {
	configs  map[string]*oauth2.Config
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
	authSvc  AuthService
}

func NewOAuthService(cfg *config.Config, userRepo repositories.UserRepository, roleRepo repositories.RoleRepository, authSvc AuthService) OAuthService {
	configs := map[string]*oauth2.Config{
		ProviderGoogle: {
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			RedirectURL:  cfg.OAuth.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		ProviderGitHub: {
			ClientID:     cfg.OAuth.GitHub.ClientID,
			ClientSecret: cfg.OAuth.GitHub.ClientSecret,
			RedirectURL:  cfg.OAuth.GitHub.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
	}
	return &oauthService{configs: configs, userRepo: userRepo, roleRepo: roleRepo, authSvc: authSvc}
}

func (s *oauthService) AuthURL(provider, state string) (string, error) {
	conf, ok := s.configs[provider]
	if !ok {
		return "", apperrors.NewBadRequestError("Unknown OAuth provider.")
	}
	return conf.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (s *oauthService) Exchange(ctx context.Context, db *gorm.DB, provider, code string) (*dto.LoginResponse, error) {
	conf, ok := s.configs[provider]
	if !ok {
		return nil, apperrors.NewBadRequestError("Unknown OAuth provider.")
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	identity, err := fetchIdentity(ctx, provider, conf.Client(ctx, token))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if identity.Email == "" {
		return nil, apperrors.NewBadRequestError("OAuth provider did not return an email address.")
	}

	user, err := s.findOrCreate(db, identity)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	names, err := s.roleRepo.RoleNamesForUser(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.RoleNames = names

	return s.authSvc.IssueTokens(db, user)
}

type oauthIdentity struct {
	Email string
	Name  string
}

func (s *oauthService) findOrCreate(db *gorm.DB, identity oauthIdentity) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(db, identity.Email)
	if err == nil {
		return user, nil
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	// No password hash: the account is usable through OAuth only until a
	// password reset sets one.
	user = &models.User{
		Email:         identity.Email,
		Name:          identity.Name,
		PasswordHash:  auth.NewOpaqueToken(),
		IsActive:      true,
		EmailVerified: true,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	role, err := s.roleRepo.EnsureRole(db, auth.RoleUser)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.roleRepo.AssignRole(db, user.ID, role.ID); err != nil && !apperrors.Is(err, repositories.ErrRoleAlreadySet) {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func fetchIdentity(ctx context.Context, provider string, client *http.Client) (oauthIdentity, error) {
	switch provider {
	case ProviderGoogle:
		return fetchGoogleIdentity(ctx, client)
	case ProviderGitHub:
		return fetchGitHubIdentity(ctx, client)
	}
	return oauthIdentity{}, fmt.Errorf("oauth: unsupported provider %q", provider)
}

func fetchGoogleIdentity(ctx context.Context, client *http.Client) (oauthIdentity, error) {
	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := getJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", &payload); err != nil {
		return oauthIdentity{}, err
	}
	return oauthIdentity{Email: payload.Email, Name: payload.Name}, nil
}

func fetchGitHubIdentity(ctx context.Context, client *http.Client) (oauthIdentity, error) {
	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Login string `json:"login"`
	}
	if err := getJSON(ctx, client, "https://api.github.com/user", &payload); err != nil {
		return oauthIdentity{}, err
	}
	name := payload.Name
	if name == "" {
		name = payload.Login
	}

	if payload.Email == "" {
		// GitHub hides the email on the profile for most users; the
		// dedicated endpoint lists them regardless.
		var emails []struct {
			Email   string `json:"email"`
			Primary bool   `json:"primary"`
		}
		if err := getJSON(ctx, client, "https://api.github.com/user/emails", &emails); err != nil {
			return oauthIdentity{}, err
		}
		for _, e := range emails {
			if e.Primary {
				payload.Email = e.Email
				break
			}
		}
		if payload.Email == "" && len(emails) > 0 {
			payload.Email = emails[0].Email
		}
	}
	return oauthIdentity{Email: payload.Email, Name: name}, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("oauth: %s returned status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
