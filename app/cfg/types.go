package cfg

type Cfg struct {
	// Feed configuration
	FeedURL  string
	FeedFile string
	SiteBase string

	// Telegram configuration
	BotToken string
	ChatID   string

	// Delivery configuration
	StateFile   string
	SendDelay   int
	HTTPTimeout int

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
