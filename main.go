package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"CanvasBoard/internal/board"
	"CanvasBoard/internal/config"
	"CanvasBoard/internal/logx"
	boardnet "CanvasBoard/internal/net"
	"CanvasBoard/internal/state"
	"CanvasBoard/internal/ui"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML settings file")
		join       = flag.String("join", "", "host to join: share link, host:port, or \"auto\" to browse the network")
		port       = flag.Int("port", 0, "relay port when hosting (default from config or 8080)")
		image      = flag.String("image", "", "background image URL or path")
		verbose    = flag.Bool("v", false, "verbose logging")
		debug      = flag.Bool("vv", false, "debug logging")
		quiet      = flag.Bool("q", false, "errors only")
	)
	flag.Parse()

	logx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logx.LevelFromFlags(*debug, *verbose, *quiet),
	})))
	log := logx.For("main")

	file := config.Default()
	if *configPath != "" {
		var err error
		if file, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *port != 0 {
		file.Session.Port = *port
	}
	if *join != "" {
		file.Session.Join = *join
	}
	// Share links opened by the OS arrive as the first argument.
	if arg := flag.Arg(0); strings.HasPrefix(arg, boardnet.LinkScheme) {
		file.Session.Join = arg
	}
	cfg := file.BoardConfig()
	if *image != "" {
		cfg.ImageURL = *image
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if file.Session.Join != "" {
		runClient(ctx, log, cfg, file.Session.Join)
		return
	}
	runHost(ctx, log, cfg, file)
}

// newSessionBoard wires a board to a peer connection through send.
func newSessionBoard(cfg board.Config, send func(boardnet.Message)) (*ui.BoardWidget, *board.Board) {
	origin := uuid.NewString()
	w := ui.NewBoardWidget()
	b := board.New(cfg,
		board.WithEventSource(w),
		board.WithListener(board.Listener{
			OnBatch:  func(batch state.Batch) { send(boardnet.BatchMessage(origin, batch)) },
			OnClear:  func() { send(boardnet.ClearMessage(origin)) },
			OnChange: w.Redraw,
			OnImageLoaded: func(ok bool) {
				if !ok {
					w.SetStatus("Background image failed to load")
				}
			},
		}),
	)
	w.SetBoard(b)
	return w, b
}

func runHost(ctx context.Context, log *slog.Logger, cfg board.Config, file *config.File) {
	hub := boardnet.NewHub()
	w, b := newSessionBoard(cfg, func(m boardnet.Message) { hub.Broadcast(m, nil) })
	defer b.Close()
	hub.OnMessage = func(m boardnet.Message) { boardnet.Apply(b, m) }

	port := file.Port()
	go func() {
		if err := hub.ListenAndServe(ctx, port); err != nil {
			log.Error("relay stopped", "err", err)
			w.SetStatus("Relay stopped: " + err.Error())
		}
	}()

	server, err := boardnet.Advertise(file.Session.Name, port)
	if err != nil {
		log.Warn("mdns advertise failed", "err", err)
	} else {
		defer server.Shutdown()
	}

	hostIP, err := boardnet.GetOutgoingIP()
	if err != nil {
		log.Warn("could not determine local address", "err", err)
		hostIP = "127.0.0.1"
	}
	link := boardnet.ShareLink(hostIP, port)
	log.Info("hosting session", "link", link)
	ui.RunApp(link, w)
	b.FlushNow()
}

func runClient(ctx context.Context, log *slog.Logger, cfg board.Config, addr string) {
	var client atomic.Pointer[boardnet.Client]
	send := func(m boardnet.Message) {
		c := client.Load()
		if c == nil {
			return
		}
		if err := c.Send(m); err != nil {
			log.Warn("send failed", "type", m.Type, "err", err)
		}
	}
	w, b := newSessionBoard(cfg, send)
	defer b.Close()

	go func() {
		if addr == "auto" {
			found, err := boardnet.Browse(ctx, 3*time.Second)
			if len(found) == 0 {
				log.Error("no session found", "err", err)
				w.SetStatus("No session found on the network")
				return
			}
			addr = found[0]
		}
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		c, err := boardnet.Dial(dialCtx, addr)
		if err != nil {
			w.SetStatus(fmt.Sprintf("Connection failed: %v", err))
			return
		}
		defer c.Close()
		client.Store(c)
		w.SetStatus("Connected to " + addr)

		if err := c.Listen(func(m boardnet.Message) { boardnet.Apply(b, m) }); err != nil {
			log.Warn("disconnected", "err", err)
		}
		w.SetStatus("Disconnected from host")
	}()

	ui.RunApp("", w)
	b.FlushNow()
}
