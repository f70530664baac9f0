// Package rptconfig loads rpt-server's configuration from command-line
// flags with environment variable overrides: flags are parsed first, then
// any RPT_* environment variable that is set replaces the flag value.
package rptconfig

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Config holds every setting needed to stand up a server instance.
type Config struct {
	Game     string // acores, bermudes, canaries
	LogLevel string // debug, info, warn, error

	Testing bool // use an in-memory loopback backend instead of a real listener

	IP         string // v4 or v6
	Port       int
	NetBackend string // wss or unsafe-ws
	Crt        string
	PrivKey    string

	ActorsLimit      int
	ChatCooldownMs   uint
	LobbyCountdownMs uint
}

// Load parses flags, applies environment overrides, and validates the
// result.
func Load() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.Game, "game", "acores", "minigame to serve (acores, bermudes, canaries)")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.BoolVar(&cfg.Testing, "testing", false, "use an in-memory loopback backend instead of a real listener")
	flag.StringVar(&cfg.IP, "ip", "v4", "address family to listen on (v4 or v6)")
	flag.IntVar(&cfg.Port, "port", 35555, "listening port")
	flag.StringVar(&cfg.NetBackend, "net-backend", "unsafe-ws", "network backend (wss or unsafe-ws)")
	flag.StringVar(&cfg.Crt, "crt", "", "path to TLS certificate (required if --net-backend wss)")
	flag.StringVar(&cfg.PrivKey, "privkey", "", "path to TLS private key (required if --net-backend wss)")
	flag.IntVar(&cfg.ActorsLimit, "actors-limit", 64, "max concurrent actors")
	chatCooldownMs := flag.Int("chat-cooldown-ms", 2000, "Chat service cooldown in milliseconds")
	lobbyCountdownMs := flag.Int("lobby-countdown-ms", 5000, "Lobby pre-game countdown in milliseconds")

	flag.Parse()

	cfg.ChatCooldownMs = uint(*chatCooldownMs)
	cfg.LobbyCountdownMs = uint(*lobbyCountdownMs)

	if game := os.Getenv("RPT_GAME"); game != "" {
		cfg.Game = game
	}
	if level := os.Getenv("RPT_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if testing := os.Getenv("RPT_TESTING"); testing != "" {
		if b, err := strconv.ParseBool(testing); err == nil {
			cfg.Testing = b
		}
	}
	if ip := os.Getenv("RPT_IP"); ip != "" {
		cfg.IP = ip
	}
	if port := os.Getenv("RPT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if backend := os.Getenv("RPT_NET_BACKEND"); backend != "" {
		cfg.NetBackend = backend
	}
	if crt := os.Getenv("RPT_CRT"); crt != "" {
		cfg.Crt = crt
	}
	if privkey := os.Getenv("RPT_PRIVKEY"); privkey != "" {
		cfg.PrivKey = privkey
	}
	if limit := os.Getenv("RPT_ACTORS_LIMIT"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			cfg.ActorsLimit = l
		}
	}
	if cooldown := os.Getenv("RPT_CHAT_COOLDOWN_MS"); cooldown != "" {
		if c, err := strconv.Atoi(cooldown); err == nil {
			cfg.ChatCooldownMs = uint(c)
		}
	}
	if countdown := os.Getenv("RPT_LOBBY_COUNTDOWN_MS"); countdown != "" {
		if c, err := strconv.Atoi(countdown); err == nil {
			cfg.LobbyCountdownMs = uint(c)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Game {
	case "acores", "bermudes", "canaries":
	default:
		return fmt.Errorf("rptconfig: unknown --game %q (want acores, bermudes, or canaries)", c.Game)
	}
	switch c.IP {
	case "v4", "v6":
	default:
		return fmt.Errorf("rptconfig: unknown --ip %q (want v4 or v6)", c.IP)
	}
	switch c.NetBackend {
	case "wss", "unsafe-ws":
	default:
		return fmt.Errorf("rptconfig: unknown --net-backend %q (want wss or unsafe-ws)", c.NetBackend)
	}
	if c.NetBackend == "wss" && (c.Crt == "" || c.PrivKey == "") {
		return fmt.Errorf("rptconfig: --net-backend wss requires --crt and --privkey")
	}
	return nil
}
