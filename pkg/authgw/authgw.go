package authgw

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Config for the external auth gateway. The gateway owns credentials and
// sessions; this service only asks it to resolve a request to an identity.
type Config struct {
	URL     string        `yaml:"url" envconfig:"AUTH_URL" default:"http://auth:3000"`
	Timeout time.Duration `yaml:"timeout" envconfig:"AUTH_TIMEOUT" default:"2s"`
}

const RoleAdmin = "admin"

type User struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	Budget float64 `json:"budget"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
	User  User `json:"user"`
}

type Client struct {
	client  *http.Client
	baseURL string
	log     *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.URL,
		log:     log.Named("authgw"),
	}
}

// Validate resolves the request credentials to a user identity. A transport
// failure and valid=false are treated identically: unauthenticated.
func (c *Client) Validate(ctx context.Context, authHeader, cookieHeader string) (User, bool) {
	if authHeader == "" && cookieHeader == "" {
		return User{}, false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/validate", http.NoBody)
	if err != nil {
		return User{}, false
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("validate call failed", zap.Error(err))
		return User{}, false
	}
	defer resp.Body.Close()

	var vr validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		c.log.Debug("validate decode failed", zap.Error(err))
		return User{}, false
	}
	if !vr.Valid {
		return User{}, false
	}
	return vr.User, true
}
