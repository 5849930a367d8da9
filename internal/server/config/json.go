package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/flagx"
	"github.com/dmitrijs2005/travelboard/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// what it names.
type JsonConfig struct {
	Env                       *string         `json:"env"`
	EndpointAddrHTTP          *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC          *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN               *string         `json:"database_dsn"`
	DatabaseTimeout           *timex.Duration `json:"database_timeout"`
	SecretKey                 *string         `json:"secret_key"`
	TokenValidityDuration     *timex.Duration `json:"token_validity_duration"`
	DemoTokenValidityDuration *timex.Duration `json:"demo_token_validity_duration"`
	AuthPolicy                *string         `json:"auth_policy"`
	AdminEmail                *string         `json:"admin_email"`
	AdminPassword             *string         `json:"admin_password"`
	UserDomain                *string         `json:"user_domain"`
	SharedPassword            *string         `json:"shared_password"`
	AllowedOrigins            []string        `json:"allowed_origins"`
	LoginRateLimit            *float64        `json:"login_rate_limit"`
	LoginBurst                *int            `json:"login_burst"`
	MaxUploadSize             *int64          `json:"max_upload_size"`
	S3RootUser                *string         `json:"s3_root_user"`
	S3RootPassword            *string         `json:"s3_root_password"`
	S3Bucket                  *string         `json:"s3_bucket"`
	S3Region                  *string         `json:"s3_region"`
	S3BaseEndpoint            *string         `json:"s3_base_endpoint"`
	S3PublicURL               *string         `json:"s3_public_url"`
}

// parseJson loads the file named by -c/-config (if any) into config.
func parseJson(config *Config, args []string) error {

	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&config.Env, c.Env)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setDuration(&config.DatabaseTimeout, c.DatabaseTimeout)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.TokenValidityDuration, c.TokenValidityDuration)
	setDuration(&config.DemoTokenValidityDuration, c.DemoTokenValidityDuration)
	setString(&config.AuthPolicy, c.AuthPolicy)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.UserDomain, c.UserDomain)
	setString(&config.SharedPassword, c.SharedPassword)
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.LoginRateLimit != nil {
		config.LoginRateLimit = *c.LoginRateLimit
	}
	if c.LoginBurst != nil {
		config.LoginBurst = *c.LoginBurst
	}
	if c.MaxUploadSize != nil {
		config.MaxUploadSize = *c.MaxUploadSize
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicURL, c.S3PublicURL)

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
