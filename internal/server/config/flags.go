package config

import (
	"flag"
	"os"
	"time"

	"github.com/bibe1s/JRSolisPortfolio/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-m string   admin email (the single write-authorized identity)
//	-t int      token validity, minutes (token helper only)
//	-u string   media host access key
//	-p string   media host secret key
//	-b string   media host bucket name
//	-g string   media host region
//	-e string   media host endpoint (e.g., "http://127.0.0.1:9000/")
//	-w string   public delivery URL root
//	-r string   redis address (empty disables the cache)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other packages' flags.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-m", "-t", "-u", "-p", "-b", "-g", "-e", "-w", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.AdminEmail, "m", config.AdminEmail, "admin email")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "media host access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "media host secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "media host bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "media host region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "media host endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "w", config.S3PublicBaseURL, "public delivery URL root")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
}
