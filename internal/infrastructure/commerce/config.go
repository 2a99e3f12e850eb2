package commerce

import (
	"encoding/base64"
	"errors"
	"strconv"
)

// CommerceConfig holds configuration for the commerce gateway integration
type CommerceConfig struct {
	// ClientID is the application id issued by the commerce platform
	ClientID string
	// ClientSecret is the signing secret; the platform issues it as a bcrypt
	// salt string ($2a$04$...) and verifies signatures server-side
	ClientSecret string
	// APIBaseURL is the base URL of the commerce gateway
	APIBaseURL string
	// GatewayKey is the static proxy key forwarded on every request
	GatewayKey string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// Errors for commerce configuration
var (
	ErrConfigMissingClientID     = errors.New("commerce: client id is required")
	ErrConfigMissingClientSecret = errors.New("commerce: client secret is required")
	ErrConfigMissingBaseURL      = errors.New("commerce: api base url is required")
)

// NewCommerceConfig creates a new commerce configuration with defaults
func NewCommerceConfig(clientID, clientSecret, baseURL string) *CommerceConfig {
	return &CommerceConfig{
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		APIBaseURL:     baseURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the commerce configuration
func (c *CommerceConfig) Validate() error {
	if c.ClientID == "" {
		return ErrConfigMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrConfigMissingClientSecret
	}
	if c.APIBaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Sign produces the timestamped credential signature the token endpoint
// expects: bcrypt of "<client_id>_<timestamp_millis>" under the salt carried
// in the client secret, then standard base64 of the resulting hash text.
func (c *CommerceConfig) Sign(timestampMillis int64) (string, error) {
	payload := c.ClientID + "_" + strconv.FormatInt(timestampMillis, 10)
	hash, err := hashWithSalt([]byte(payload), c.ClientSecret)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(hash)), nil
}
