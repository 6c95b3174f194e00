package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sbelkacem/gosocial/cmd/cli/config"
)

// SessionCookieName matches the server's session cookie.
const SessionCookieName = "gosocial_session"

// Do sends a JSON request with the stored session cookie attached and decodes
// the JSON response into out when out is non-nil. Redirect responses are
// returned as-is so callers can harvest cookies.
func Do(method, path string, payload interface{}, out interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess := config.LoadSession(); sess != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess})
	}

	httpClient := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return resp, fmt.Errorf("unauthorized: run 'gosocial login' first")
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return resp, fmt.Errorf("api error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return resp, fmt.Errorf("api error: status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp, nil
}

// SessionFromResponse extracts the session cookie value set by a login or
// register response.
func SessionFromResponse(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			return c.Value
		}
	}
	return ""
}
