package main

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sebas/rpt-server/internal/banner"
	"github.com/sebas/rpt-server/internal/logger"
	"github.com/sebas/rpt-server/internal/rptcore"
	"github.com/sebas/rpt-server/internal/rptconfig"
	"github.com/sebas/rpt-server/internal/rptnetwork"
	"github.com/sebas/rpt-server/internal/rptnetwork/wsbackend"
	"github.com/sebas/rpt-server/internal/rptservices"
	"github.com/sebas/rpt-server/internal/rptservices/minigame"
)

func main() {
	cfg, err := rptconfig.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.InitLogger(logger.ColorableStdout())
	logger.SetLevel(cfg.LogLevel)

	banner.Print("rpt-server", []banner.ConfigLine{
		{Label: "Game", Value: cfg.Game},
		{Label: "Net backend", Value: cfg.NetBackend},
		{Label: "Address family", Value: cfg.IP},
		{Label: "Port", Value: fmt.Sprint(cfg.Port)},
		{Label: "Actors limit", Value: fmt.Sprint(cfg.ActorsLimit)},
		{Label: "Chat cooldown (ms)", Value: fmt.Sprint(cfg.ChatCooldownMs)},
		{Label: "Lobby countdown (ms)", Value: fmt.Sprint(cfg.LobbyCountdownMs)},
		{Label: "Testing mode", Value: fmt.Sprint(cfg.Testing)},
	})

	gameKind, err := gameKindFor(cfg.Game)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := rptcore.NewServiceContext()
	game := minigame.NewService(ctx, gameKind)
	lobby := rptservices.NewLobby(ctx, game, cfg.LobbyCountdownMs)
	chat := rptservices.NewChat(ctx, cfg.ChatCooldownMs)

	backend := rptnetwork.NewBackend(nil, cfg.ActorsLimit, 256)
	// Chat, Lobby, Admin, Minigame: fixed by this server's own service
	// set, not discovered at runtime, so countServices is a constant.
	const registeredServiceCount = 4
	admin := rptservices.NewAdmin(ctx, backend.ActorCount, func() int { return registeredServiceCount })

	ser, err := rptcore.NewSERProtocol(chat, lobby, admin, game)
	if err != nil {
		slog.Error("failed to register services", "error", err)
		os.Exit(1)
	}

	stop, err := startTransport(cfg, backend)
	if err != nil {
		slog.Error("failed to start transport", "error", err)
		os.Exit(1)
	}

	executor := rptcore.NewExecutor(backend, ser)
	executor.OnJoined(func(actorUID uint64, name string) {
		if _, err := lobby.AssignActor(actorUID); err != nil {
			slog.Warn("[rptserver] actor joined with no lobby slot available", "actor", actorUID, "name", name, "error", err)
		}
	})
	executor.OnLeft(func(actorUID uint64, reason rptcore.HandlingResult) {
		if err := lobby.RemoveActor(actorUID); err != nil {
			slog.Debug("[rptserver] actor left without a lobby slot", "actor", actorUID, "error", err)
		}
	})

	run(backend, executor, stop)
}

func gameKindFor(name string) (minigame.Kind, error) {
	switch name {
	case "acores":
		return minigame.KindAcores, nil
	case "bermudes":
		return minigame.KindBermudes, nil
	case "canaries":
		return minigame.KindCanaries, nil
	default:
		return 0, fmt.Errorf("rptserver: unknown game %q", name)
	}
}

// startTransport wires backend's Transport per cfg.NetBackend/cfg.Testing
// and returns a stop function closing every listener.
func startTransport(cfg *rptconfig.Config, backend *rptnetwork.Backend) (func() error, error) {
	if cfg.Testing {
		slog.Info("[rptserver] testing mode: using an in-memory loopback transport, no socket opened")
		backend.SetTransport(rptnetwork.NewLoopbackTransport())
		return func() error { return nil }, nil
	}

	var tlsConfig *tls.Config
	if cfg.NetBackend == "wss" {
		cert, err := tls.LoadX509KeyPair(cfg.Crt, cfg.PrivKey)
		if err != nil {
			return nil, fmt.Errorf("rptserver: loading TLS keypair: %w", err)
		}
		tlsConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
	}

	listener, stop, err := wsbackend.Listen(backend, wsbackend.Config{
		Port:      cfg.Port,
		IPv6:      cfg.IP == "v6",
		TLSConfig: tlsConfig,
	})
	if err != nil {
		return nil, err
	}
	backend.SetTransport(listener)
	return stop, nil
}

func run(backend *rptnetwork.Backend, executor *rptcore.Executor, stopTransport func() error) {
	slog.Info("Starting rpt-server")
	logNetworkInterfaces()

	done := make(chan bool, 1)
	go func() {
		done <- executor.Run()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down", "signal", sig)
		backend.Close()
		<-done
	case cleanShutdown := <-done:
		slog.Info("Executor stopped", "cleanShutdown", cleanShutdown)
	}

	if err := stopTransport(); err != nil {
		slog.Error("error stopping transport", "error", err)
	}

	time.Sleep(1 * time.Second)
}

func logNetworkInterfaces() {
	interfaces, err := net.Interfaces()
	if err != nil {
		return
	}

	for _, iface := range interfaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ip, _, err := net.ParseCIDR(addr.String())
			if err != nil {
				continue
			}
			slog.Debug("Network interface", "interface", iface.Name, "ip", ip.String())
		}
	}
}
