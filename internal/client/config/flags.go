package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base URL (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-s string   session store backend: sqlite, redis or memory
//	-p string   SQLite session file path
//	-l string   notification locale: vi or en
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], "-a", "-t", "-s", "-p", "-l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base url")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "session store backend (sqlite|redis|memory)")
	fs.StringVar(&cfg.StorePath, "p", cfg.StorePath, "sqlite session file")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "notification locale (vi|en)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
