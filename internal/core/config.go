package core

import (
	"time"

	"tunegrab/internal/match"
)

type Config struct {
	Match  match.Config
	Search SearchConfig
	Server ServerConfig
	Log    LogConfig
	App    AppConfig
}

type SearchConfig struct {
	MaxResults int // ranking cap; the provider is asked for twice as many
	YTDLPPath  string
	SongsDir   string
}

type ServerConfig struct {
	Host         string
	Port         int // 0 disables the metrics server
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AppConfig struct {
	AutoAcceptThreshold int
	DisplayCap          int
	CancelToken         string
	HistoryPath         string
	DedupCapacity       int
}

func DefaultConfig() *Config {
	return &Config{
		Match: match.DefaultConfig(),
		Search: SearchConfig{
			MaxResults: 5,
			YTDLPPath:  "yt-dlp",
			SongsDir:   "./songs",
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         0,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		App: AppConfig{
			AutoAcceptThreshold: match.DefaultAutoAcceptThreshold,
			DisplayCap:          10,
			CancelToken:         "q",
			HistoryPath:         "./tunegrab_history.db",
			DedupCapacity:       10000,
		},
	}
}
