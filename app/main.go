package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"rssnotify/app/cfg"
	"rssnotify/app/feed"
	"rssnotify/app/notify"
	"rssnotify/app/render"
	"rssnotify/app/state"
	"rssnotify/app/telegram"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Configuration error:", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting RSS notify", "version", appCfg.Version)

	feedURL := appCfg.FeedURL
	siteBase := appCfg.SiteBase
	var filters []feed.ConfigFilter
	if appCfg.FeedFile != "" {
		feedConfig, err := feed.LoadConfig(appCfg.FeedFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Configuration error:", err)
			os.Exit(1)
		}
		feedURL = feedConfig.URL
		if feedConfig.SiteBase != "" {
			siteBase = feedConfig.SiteBase
		}
		filters = feedConfig.Filters
		slog.Info("Feed configuration loaded", "file", appCfg.FeedFile, "filters", len(filters))
	}

	timeout := time.Duration(appCfg.HTTPTimeout) * time.Second
	httpClient := &http.Client{Timeout: timeout}

	fetcher := feed.NewFetcher(httpClient, appCfg.UserAgent)
	renderer := render.NewRenderer(siteBase)
	client := telegram.NewClient(appCfg.BotToken, appCfg.ChatID, timeout)
	store := state.NewStore(appCfg.StateFile)

	notifier := notify.NewNotifier(fetcher, renderer, client, store, feedURL, filters,
		time.Duration(appCfg.SendDelay)*time.Second)

	if err := notifier.Run(context.Background()); err != nil {
		slog.Error("Batch finished with error", "error", err)
	}

	slog.Info("Done")
}
