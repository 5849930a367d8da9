// Package config handles configuration for the travelboard server: defaults,
// a JSON overlay, environment variables and command-line flags, applied in
// that order.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/common"
)

// Credential policies a deployment may choose from.
const (
	PolicyHashed = "hashed"
	PolicyRoster = "roster"
	PolicyDomain = "domain"
)

// DemoSecretKey signs tokens under the roster policy when no secret is set.
// It must never be used outside demos.
const DemoSecretKey = "default-secret-key"

const EnvProduction = "production"

// Config holds runtime settings for the travelboard server.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses for the REST API and
//     the gRPC health endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty means memory-only operation.
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenValidityDuration / DemoTokenValidityDuration: token lifetimes for
//     persisted users and for the roster policy.
//   - AuthPolicy: one of PolicyHashed, PolicyRoster, PolicyDomain.
//   - S3*: S3-compatible media host. Uploads are disabled without a bucket.
type Config struct {
	Env                       string        `env:"TRAVELBOARD_ENV"`
	EndpointAddrHTTP          string        `env:"TRAVELBOARD_HTTP_ADDR"`
	EndpointAddrGRPC          string        `env:"TRAVELBOARD_GRPC_ADDR"`
	DatabaseDSN               string        `env:"DATABASE_URL"`
	DatabaseTimeout           time.Duration `env:"TRAVELBOARD_DB_TIMEOUT"`
	SecretKey                 string        `env:"JWT_SECRET"`
	TokenValidityDuration     time.Duration `env:"JWT_EXPIRES_IN"`
	DemoTokenValidityDuration time.Duration `env:"TRAVELBOARD_DEMO_TOKEN_TTL"`
	AuthPolicy                string        `env:"TRAVELBOARD_AUTH_POLICY"`
	AdminEmail                string        `env:"TRAVELBOARD_ADMIN_EMAIL"`
	AdminPassword             string        `env:"TRAVELBOARD_ADMIN_PASSWORD"`
	UserDomain                string        `env:"TRAVELBOARD_USER_DOMAIN"`
	SharedPassword            string        `env:"TRAVELBOARD_SHARED_PASSWORD"`
	AllowedOrigins            []string      `env:"FRONTEND_URL" envSeparator:","`
	LoginRateLimit            float64       `env:"TRAVELBOARD_LOGIN_RPS"`
	LoginBurst                int           `env:"TRAVELBOARD_LOGIN_BURST"`
	MaxUploadSize             int64         `env:"TRAVELBOARD_MAX_UPLOAD"`
	S3RootUser                string        `env:"S3_ROOT_USER"`
	S3RootPassword            string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket                  string        `env:"S3_BUCKET"`
	S3Region                  string        `env:"S3_REGION"`
	S3BaseEndpoint            string        `env:"S3_BASE_ENDPOINT"`
	S3PublicURL               string        `env:"S3_PUBLIC_URL"`
}

// LoadDefaults populates Config with development defaults: roster policy,
// no database and no media host, so the service runs with zero setup.
func (c *Config) LoadDefaults() {
	c.Env = "development"
	c.EndpointAddrHTTP = ":5000"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.DatabaseTimeout = 3 * time.Second
	c.SecretKey = ""
	c.TokenValidityDuration = 7 * 24 * time.Hour
	c.DemoTokenValidityDuration = 24 * time.Hour
	c.AuthPolicy = PolicyRoster
	c.AdminEmail = "immerseindia@admin.com"
	c.AdminPassword = ""
	c.UserDomain = "immerseindia.com"
	c.SharedPassword = ""
	c.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	c.LoginRateLimit = 0.5
	c.LoginBurst = 5
	c.MaxUploadSize = 10 << 20
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start with. All returned
// errors wrap common.ErrConfig.
func (c *Config) Validate() error {
	if !slices.Contains([]string{PolicyHashed, PolicyRoster, PolicyDomain}, c.AuthPolicy) {
		return fmt.Errorf("%w: unknown auth policy %q", common.ErrConfig, c.AuthPolicy)
	}
	if c.AuthPolicy == PolicyRoster && c.Env == EnvProduction {
		return fmt.Errorf("%w: roster policy is not allowed in production", common.ErrConfig)
	}
	if c.AuthPolicy != PolicyRoster && c.SecretKey == "" {
		return fmt.Errorf("%w: JWT secret is required for %s policy", common.ErrConfig, c.AuthPolicy)
	}
	if c.AuthPolicy == PolicyDomain {
		if c.UserDomain == "" || c.AdminEmail == "" {
			return fmt.Errorf("%w: domain policy needs admin email and user domain", common.ErrConfig)
		}
		if c.SharedPassword == "" {
			return fmt.Errorf("%w: domain policy needs a shared password", common.ErrConfig)
		}
	}
	if c.TokenValidityDuration <= 0 || c.DemoTokenValidityDuration <= 0 {
		return fmt.Errorf("%w: token validity must be positive", common.ErrConfig)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("%w: max upload size must be positive", common.ErrConfig)
	}
	return nil
}

// SigningSecret returns the JWT secret and whether it is the demo fallback.
func (c *Config) SigningSecret() (string, bool) {
	if c.SecretKey == "" && c.AuthPolicy == PolicyRoster {
		return DemoSecretKey, true
	}
	return c.SecretKey, false
}

// TokenTTL picks the lifetime matching the configured policy.
func (c *Config) TokenTTL() time.Duration {
	if c.AuthPolicy == PolicyRoster {
		return c.DemoTokenValidityDuration
	}
	return c.TokenValidityDuration
}

// MediaEnabled reports whether an object store is configured.
func (c *Config) MediaEnabled() bool {
	return c.S3Bucket != "" && c.S3BaseEndpoint != ""
}
