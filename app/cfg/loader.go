package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Feed configuration
	FeedURL  string `long:"feed-url" env:"RSS_URL" default:"https://defence.in/forums/news/index.rss" description:"RSS/Atom feed to monitor"`
	FeedFile string `long:"feed-file" env:"FEED_FILE" description:"Optional YAML feed configuration file (overrides feed URL and site base)"`
	SiteBase string `long:"site-base" env:"SITE_BASE_URL" default:"https://defence.in" description:"Base URL for resolving relative image links"`

	// Telegram configuration
	BotToken string `long:"bot-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token (required)" required:"true"`
	ChatID   string `long:"chat-id" env:"TELEGRAM_CHAT_ID" description:"Telegram chat to deliver to (required)" required:"true"`

	// Delivery configuration
	StateFile   string `long:"state-file" env:"STATE_FILE" default:"seen_items.json" description:"Path of the persisted seen-items file"`
	SendDelay   int    `long:"send-delay" env:"SEND_DELAY" default:"1" description:"Pause between successful sends in seconds"`
	HTTPTimeout int    `long:"http-timeout" env:"HTTP_TIMEOUT" default:"15" description:"Timeout for outbound HTTP requests in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"RSS Notify/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedURL:     raw.FeedURL,
		FeedFile:    raw.FeedFile,
		SiteBase:    raw.SiteBase,
		BotToken:    raw.BotToken,
		ChatID:      raw.ChatID,
		StateFile:   raw.StateFile,
		SendDelay:   raw.SendDelay,
		HTTPTimeout: raw.HTTPTimeout,
		UserAgent:   raw.UserAgent,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
