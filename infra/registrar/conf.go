package registrar

import (
	"fmt"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

// Conf configures the registrar calendar endpoint. Leaving AuthURL empty
// disables OAuth2 and requests are sent unauthenticated.
type Conf struct {
	URL            string   `json:"url"`
	Format         string   `json:"format"`
	ClientID       string   `json:"client_id"`
	ClientSecret   string   `json:"client_secret"`
	AuthURL        string   `json:"auth_url"`
	Scopes         []string `json:"scopes"`
	TimeoutSeconds int      `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Conf) SetDefaults() {
	if c.Format == "" {
		c.Format = "json"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c Conf) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("registrar url is required")
	}
	if c.AuthURL != "" && c.ClientID == "" {
		return fmt.Errorf("registrar client_id is required with auth_url")
	}
	return nil
}

func (c Conf) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Conf) toOauth2Config() *clientcredentials.Config {
	return &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.AuthURL,
		Scopes:       c.Scopes,
	}
}
