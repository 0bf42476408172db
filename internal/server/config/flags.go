package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// parseFlags overlays command-line flags onto cfg.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g. ":5003")
//	-g string   gRPC health bind address; empty disables it
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-k int      bcrypt cost
//	-w int      concurrent password hashing workers
//	-o int      store call timeout, seconds
//	-r string   Redis address for rate limiting; empty keeps limits in memory
//	-l string   log level (debug|info|warn|error)
//
// Only the flags above are picked out of args, so -c/-config and flags owned
// by other components do not collide.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-k", "-w", "-o", "-r", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&cfg.EndpointAddrGRPC, "g", cfg.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.IntVar(&cfg.PasswordHashCost, "k", cfg.PasswordHashCost, "bcrypt cost")
	fs.IntVar(&cfg.HashWorkers, "w", cfg.HashWorkers, "password hashing workers")
	storeTimeout := fs.Int("o", int(cfg.StoreTimeout.Seconds()), "store timeout (in seconds)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Durations are only touched when given explicitly, so sub-minute values
	// from JSON or env survive a flag pass that does not mention them.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "o":
			cfg.StoreTimeout = time.Duration(*storeTimeout) * time.Second
		}
	})
	return nil
}
