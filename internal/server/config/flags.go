package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/cashlog/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., "localhost:14080")
//	-d string   PostgreSQL DSN
//	-b string   base URL used to build absolute login/export links
//	-e bool     enable email delivery of login links
//	-s string   SMTP relay address (host:port)
//	-f string   SMTP envelope sender
//	-q int      store-call query timeout, seconds
//	-k int      session cookie max age, days
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and converted to time.Duration.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-b", "-e", "-s", "-f", "-q", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.BaseURL, "b", config.BaseURL, "base URL for login/export links")
	fs.BoolVar(&config.UseEmail, "e", config.UseEmail, "send login links by email")
	fs.StringVar(&config.SMTPAddr, "s", config.SMTPAddr, "SMTP relay address")
	fs.StringVar(&config.SMTPFrom, "f", config.SMTPFrom, "SMTP envelope sender")

	queryTimeout := fs.Int("q", int(config.QueryTimeout.Seconds()), "query timeout (in seconds)")
	cookieMaxAge := fs.Int("k", int(config.SessionCookieMaxAge.Hours()/24), "session cookie max age (in days)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.QueryTimeout = time.Duration(*queryTimeout) * time.Second
	config.SessionCookieMaxAge = time.Duration(*cookieMaxAge) * 24 * time.Hour
}
