package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/askarbek-a/linkup/internal/config"
	"github.com/askarbek-a/linkup/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// OAuthUserRepository is the slice of the user store OAuth login needs.
type OAuthUserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
}

// OAuthService resolves a Google authorization code to a local user account,
// creating the account on first login.
type OAuthService struct {
	cfg      *config.Config
	userRepo OAuthUserRepository
	client   *http.Client
}

func NewOAuthService(cfg *config.Config, userRepo OAuthUserRepository) *OAuthService {
	return &OAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL builds the Google consent URL plus a fresh state token.
func (s *OAuthService) AuthURL() (authURL, state string) {
	state = uuid.NewString()

	params := url.Values{
		"response_type": {"code"},
		"client_id":     {s.cfg.GoogleClientID},
		"redirect_uri":  {s.cfg.GoogleRedirectURL},
		"scope":         {"openid email profile"},
		"state":         {state},
		"access_type":   {"offline"},
	}
	return googleAuthURL + "?" + params.Encode(), state
}

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// HandleCallback exchanges the authorization code for tokens, fetches the
// Google profile, and finds or creates the matching local user.
func (s *OAuthService) HandleCallback(ctx context.Context, code string) (*models.User, error) {
	token, err := s.exchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	if user, err := s.userRepo.GetUserByEmail(ctx, info.Email); err == nil && user != nil {
		return user, nil
	}

	username := strings.SplitN(info.Email, "@", 2)[0]
	user := &models.User{
		Username: username,
		Email:    info.Email,
		FullName: info.Name,
		Avatar:   info.Picture,
		Role:     "user",
		// No usable password; OAuth accounts log in through Google only.
		HashedPassword: "oauth:" + uuid.NewString(),
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user from Google profile: %v", err)
	}

	logrus.WithField("email", info.Email).Info("Created new user via Google OAuth")
	return created, nil
}

func (s *OAuthService) exchangeCode(ctx context.Context, code string) (*googleTokenResponse, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {s.cfg.GoogleClientID},
		"client_secret": {s.cfg.GoogleClientSecret},
		"redirect_uri":  {s.cfg.GoogleRedirectURL},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var token googleTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %v", err)
	}
	return &token, nil
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %v", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google profile has no email")
	}
	return &info, nil
}
