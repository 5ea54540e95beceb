package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidLogin is returned when the server rejects the credentials.
var ErrInvalidLogin = errors.New("invalid username or password")

// Login posts the credentials form and returns the session cookie value the
// server issued. A successful login answers with a redirect carrying the
// cookie; a re-rendered login page means the credentials were rejected.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	loginURL := *c.baseURL
	loginURL.Path = strings.TrimRight(loginURL.Path, "/") + "/login"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 400:
		return "", decodeError(resp)
	case resp.StatusCode == http.StatusSeeOther:
		for _, cookie := range resp.Cookies() {
			if cookie.Name == c.cookieName && cookie.Value != "" {
				c.session = cookie.Value
				return cookie.Value, nil
			}
		}
		return "", errors.New("server did not issue a session cookie")
	default:
		return "", ErrInvalidLogin
	}
}
