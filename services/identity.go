package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"time"
)

var (
	// ErrIdentityUnavailable marks a transport-level failure talking to the
	// identity provider, as opposed to the provider rejecting the token.
	ErrIdentityUnavailable = errors.New("identity provider unavailable")

	// ErrIdentityRejected marks the provider refusing the access token.
	ErrIdentityRejected = errors.New("identity provider rejected the access token")

	// ErrInvalidIdentity marks a provider response that fails the identity
	// record schema.
	ErrInvalidIdentity = errors.New("invalid identity record")
)

type UserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// IdentityVerifier resolves an OAuth access token to a user identity via the
// provider's userinfo endpoint.
type IdentityVerifier struct {
	httpClient  *http.Client
	userInfoURL string
}

func NewIdentityVerifier(userInfoURL string) *IdentityVerifier {
	return &IdentityVerifier{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		userInfoURL: userInfoURL,
	}
}

// FetchUserInfo calls the userinfo endpoint with the given bearer token.
// Transport failures are retried once; a rejection from the provider
// (any non-2xx status) is not.
func (v *IdentityVerifier) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	resp, err := v.get(ctx, accessToken)
	if err != nil {
		resp, err = v.get(ctx, accessToken)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrIdentityRejected, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityUnavailable, err)
	}

	var info UserInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("%w: undecodable response: %v", ErrInvalidIdentity, err)
	}

	if err := info.validate(); err != nil {
		return nil, err
	}

	return &info, nil
}

func (v *IdentityVerifier) get(ctx context.Context, accessToken string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return v.httpClient.Do(req)
}

func (i *UserInfo) validate() error {
	if i.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidIdentity)
	}
	if _, err := mail.ParseAddress(i.Email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidIdentity, i.Email)
	}
	if i.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidIdentity)
	}
	u, err := url.Parse(i.Picture)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: invalid picture URL %q", ErrInvalidIdentity, i.Picture)
	}
	return nil
}
