package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/chatvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   bind address (e.g., ":8080")
//	-r string   database driver ("sqlite" or "pgx")
//	-d string   database DSN
//	-p int      listing page size
//	-w int      rate-limit window, milliseconds
//	-t int      session TTL, minutes
//
// The args are first filtered to only the flags handled here using
// flagx.FilterArgs, avoiding collisions with the -c/-config flag consumed by
// the JSON layer.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-d", "-p", "-w", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "r", config.DatabaseDriver, "database driver (sqlite or pgx)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.PageSize, "p", config.PageSize, "listing page size")

	rateLimitWindow := fs.Int("w", int(config.RateLimitWindow.Milliseconds()), "rate limit window (in milliseconds)")
	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session TTL (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RateLimitWindow = time.Duration(*rateLimitWindow) * time.Millisecond
	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
}
