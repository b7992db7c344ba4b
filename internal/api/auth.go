package api

import (
	"context"
	"fmt"
	"net/http"

	"sellerdesk/internal/models"
)

// GoogleAuth relays a Google ID token to the backend and returns the remote
// session cookie value on success.
func (c *Client) GoogleAuth(ctx context.Context, idToken string) (string, error) {
	return c.login(ctx, "/auth/google", map[string]string{"credential": idToken})
}

// Login performs the password login the backend still supports.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.login(ctx, "/login", map[string]string{"email": email, "password": password})
}

func (c *Client) login(ctx context.Context, path string, payload map[string]string) (string, error) {
	req, err := newJSONRequest(ctx, http.MethodPost, c.base+path, payload)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("api: login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("api: login: %s", errorMessage(resp))
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("api: login succeeded but no session cookie was set")
}

// Logout invalidates the remote session. The route lives outside the /api
// prefix on the backend.
func (c *Client) Logout(ctx context.Context) error {
	return c.doURL(ctx, http.MethodGet, c.root+"/logout", "", nil, nil)
}

func (c *Client) SellerInfo(ctx context.Context) (models.SellerInfo, error) {
	var info models.SellerInfo
	err := c.getJSON(ctx, "/seller_info", &info)
	return info, err
}

// OnboardingForm is the one-time setup payload for a new seller.
type OnboardingForm struct {
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	Category     string `json:"category"`
	UPIId        string `json:"upi_id,omitempty"`
	Description  string `json:"description,omitempty"`
}

func (c *Client) Onboard(ctx context.Context, form OnboardingForm) error {
	return c.postJSON(ctx, "/onboarding", form, nil)
}
