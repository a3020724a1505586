// Package config assembles runtime settings for the newswatch server from
// defaults, environment variables and command-line flags, in that order.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings for the newswatch server.
//
// Fields:
//   - Addr: bind address for the HTTP API.
//   - MongoURI / MongoDB: backing document store; ignored with MemoryStore.
//   - JWTSecret: HMAC secret signing session tokens. Rotating it invalidates
//     every outstanding token (tokens carry no expiry).
//   - MaxFilters: per-user newsFilters bound.
//   - Feeds: RSS sources for the refresh worker.
//   - RefreshEvery: cadence of the global home-news rescan.
//   - MemoryStore: run against the in-memory store (development only).
type Config struct {
	Addr         string
	MongoURI     string
	MongoDB      string
	JWTSecret    string
	Issuer       string
	MaxFilters   int
	Feeds        []string
	RefreshEvery time.Duration
	MemoryStore  bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.Addr = ":3000"
	c.MongoURI = "mongodb://127.0.0.1:27017"
	c.MongoDB = "newswatcherdb"
	c.JWTSecret = "secretKey"
	c.Issuer = "newswatch"
	c.MaxFilters = 5
	c.Feeds = []string{"https://feeds.bbci.co.uk/news/technology/rss.xml"}
	c.RefreshEvery = 15 * time.Minute
	c.MemoryStore = false
}

// Load builds a Config by applying defaults, then environment variables, then
// the given command-line arguments.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv()
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("NEWSWATCH_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.MongoURI = v
	}
	if v := os.Getenv("MONGODB_DB"); v != "" {
		c.MongoDB = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("NEWSWATCH_ISSUER"); v != "" {
		c.Issuer = v
	}
	if v := os.Getenv("MAX_FILTERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxFilters = n
		}
	}
	if v := os.Getenv("RSS_FEEDS"); v != "" {
		c.Feeds = splitFeeds(v)
	}
	if v := os.Getenv("REFRESH_EVERY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.RefreshEvery = d
		}
	}
}

func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("newswatch", flag.ContinueOnError)

	fs.StringVar(&c.Addr, "a", c.Addr, "address and port to serve the HTTP API")
	fs.StringVar(&c.MongoURI, "m", c.MongoURI, "MongoDB connection URI")
	fs.StringVar(&c.MongoDB, "d", c.MongoDB, "MongoDB database name")
	fs.StringVar(&c.JWTSecret, "s", c.JWTSecret, "JWT HMAC secret key")
	fs.IntVar(&c.MaxFilters, "f", c.MaxFilters, "maximum news filters per user")
	fs.BoolVar(&c.MemoryStore, "mem", c.MemoryStore, "use the in-memory store (development)")
	fs.DurationVar(&c.RefreshEvery, "r", c.RefreshEvery, "home news refresh interval")

	feeds := fs.String("feeds", "", "comma-separated RSS feed URLs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *feeds != "" {
		c.Feeds = splitFeeds(*feeds)
	}
	return nil
}

func splitFeeds(s string) []string {
	parts := strings.Split(s, ",")
	feeds := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			feeds = append(feeds, p)
		}
	}
	return feeds
}
