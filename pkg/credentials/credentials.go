package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"statup/internal/core/domain"
)

// Environment variable names for the service-account fields.
const (
	EnvAccountType    = "ACCOUNT_TYPE"
	EnvProjectID      = "PROJECT_ID"
	EnvPrivateKeyID   = "PRIVATE_KEY_ID"
	EnvPrivateKey     = "PRIVATE_KEY"
	EnvClientEmail    = "CLIENT_EMAIL"
	EnvClientID       = "CLIENT_ID"
	EnvAuthURI        = "AUTH_URI"
	EnvTokenURI       = "TOKEN_URI"
	EnvAuthCertURL    = "AUTH_PROVIDER_X509_CERT_URL"
	EnvClientCertURL  = "CLIENT_X509_CERT_URL"
	EnvUniverseDomain = "UNIVERSE_DOMAIN"
)

// Defaults for the optional issuer endpoints.
const (
	defaultAuthURI        = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURI       = "https://oauth2.googleapis.com/token"
	defaultAuthCertURL    = "https://www.googleapis.com/oauth2/v1/certs"
	defaultUniverseDomain = "googleapis.com"
)

// ServiceAccount is the canonical credential document shape the
// provider's authentication flow consumes.
type ServiceAccount struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
	UniverseDomain          string `json:"universe_domain,omitempty"`
}

// FromEnv assembles a service account from the process environment.
// Missing required values fail eagerly with a ConfigurationError naming
// every absent variable instead of deferring to an opaque provider-side
// authentication failure.
func FromEnv() (*ServiceAccount, error) {
	sa := &ServiceAccount{
		Type:                    os.Getenv(EnvAccountType),
		ProjectID:               os.Getenv(EnvProjectID),
		PrivateKeyID:            os.Getenv(EnvPrivateKeyID),
		PrivateKey:              os.Getenv(EnvPrivateKey),
		ClientEmail:             os.Getenv(EnvClientEmail),
		ClientID:                os.Getenv(EnvClientID),
		AuthURI:                 os.Getenv(EnvAuthURI),
		TokenURI:                os.Getenv(EnvTokenURI),
		AuthProviderX509CertURL: os.Getenv(EnvAuthCertURL),
		ClientX509CertURL:       os.Getenv(EnvClientCertURL),
		UniverseDomain:          os.Getenv(EnvUniverseDomain),
	}

	var missing []string
	for _, field := range []struct {
		env   string
		value string
	}{
		{EnvProjectID, sa.ProjectID},
		{EnvPrivateKeyID, sa.PrivateKeyID},
		{EnvPrivateKey, sa.PrivateKey},
		{EnvClientEmail, sa.ClientEmail},
		{EnvClientID, sa.ClientID},
	} {
		if field.value == "" {
			missing = append(missing, field.env)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.ConfigurationError{Missing: missing}
	}

	// Shells and .env files commonly carry the key with escaped
	// newlines; the PEM parser needs real ones.
	sa.PrivateKey = strings.ReplaceAll(sa.PrivateKey, `\n`, "\n")

	if sa.Type == "" {
		sa.Type = "service_account"
	}
	if sa.AuthURI == "" {
		sa.AuthURI = defaultAuthURI
	}
	if sa.TokenURI == "" {
		sa.TokenURI = defaultTokenURI
	}
	if sa.AuthProviderX509CertURL == "" {
		sa.AuthProviderX509CertURL = defaultAuthCertURL
	}
	if sa.UniverseDomain == "" {
		sa.UniverseDomain = defaultUniverseDomain
	}

	return sa, nil
}

// JSON serializes the credential document.
func (sa *ServiceAccount) JSON() ([]byte, error) {
	data, err := json.Marshal(sa)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize credentials: %w", err)
	}
	return data, nil
}

// WriteFile writes the credential artifact readable only by the owner.
func (sa *ServiceAccount) WriteFile(path string) error {
	data, err := sa.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// LoadFile reads and validates an existing credential file.
func LoadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("cannot read credentials file %s: %v", path, err)}
	}

	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("credentials file %s is not valid JSON: %v", path, err)}
	}
	if sa.PrivateKey == "" || sa.ClientEmail == "" {
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("credentials file %s is missing key material", path)}
	}

	return data, nil
}

// Load returns the credential JSON, preferring an existing credential
// file at path and otherwise assembling one from the environment and
// writing the artifact for the next run.
func Load(path string) ([]byte, error) {
	if _, err := os.Stat(path); err == nil {
		return LoadFile(path)
	}

	sa, err := FromEnv()
	if err != nil {
		return nil, err
	}
	if err := sa.WriteFile(path); err != nil {
		return nil, err
	}
	return sa.JSON()
}
