package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, hours
//	-p string   credential policy: hashed, roster or domain
//	-u string   S3 root user
//	-w string   S3 root password
//	-b string   S3 bucket name
//	-r string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Only these flags are picked out of args, so other components may share
// the command line.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-p", "-u", "-w", "-b", "-r", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")

	fs.StringVar(&config.AuthPolicy, "p", config.AuthPolicy, "credential policy")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "w", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if isFlagSet(fs, "t") {
		config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
	}
	return nil
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
