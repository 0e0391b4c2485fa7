package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"AreaBoard/internal/export"
	boardnet "AreaBoard/internal/net"
	"AreaBoard/internal/state"
	"AreaBoard/internal/ui"
)

const appID = "io.github.areaboard"

func main() {
	var (
		share    = flag.Int("share", 0, "share the board on this port (0 disables sharing)")
		join     = flag.String("join", "", "follow a shared board (areaboard://host:port)")
		discover = flag.Bool("discover", false, "follow the first shared board found on the LAN")
		load     = flag.String("load", "", "open a saved board")
		pdfOut   = flag.String("export-pdf", "", "write the board to this PDF and exit")
		width    = flag.Int("width", 0, "board width in pixels")
		height   = flag.Int("height", 0, "board height in pixels")
		col      = flag.String("color", "", "polygon colour (CSS name or #rrggbb)")
		pcol     = flag.String("point-color", "", "handle colour (defaults to -color)")
		opacity  = flag.Float64("opacity", -1, "polygon opacity 0..1")
		reverse  = flag.Bool("reverse", false, "start layers reversed")
		noFill   = flag.Bool("no-fill", false, "do not fill polygons")
		noLine   = flag.Bool("no-line", false, "do not stroke polygons")
		noDelete = flag.Bool("no-key-delete", false, "disable the Delete key")
		save     = flag.Bool("save-config", false, "store the resulting configuration as defaults")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	state.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	log := state.Logger()

	fa := app.NewWithID(appID)
	cfg := ui.LoadConfig(fa.Preferences())
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *col != "" {
		cfg.Color = *col
	}
	if *pcol != "" {
		cfg.PointColor = *pcol
	}
	if *opacity >= 0 {
		cfg.Opacity = *opacity
	}
	cfg.Reverse = *reverse
	if *noFill {
		cfg.Fill = false
	}
	if *noLine {
		cfg.ShowLine = false
	}
	if *noDelete {
		cfg.KeyDelete = false
	}

	board, err := ui.NewApp(fa, cfg)
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}
	if *save {
		cfg.Save(fa.Preferences())
	}
	if *load != "" {
		if err := openFile(board, *load); err != nil {
			log.Error("load failed", "path", *load, "err", err)
			os.Exit(1)
		}
	}

	if *pdfOut != "" {
		w, h := board.Board().PixelSize()
		if err := export.ExportPDF(*pdfOut, w, h, board.Snapshots()); err != nil {
			log.Error("export failed", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	link := *join
	if *discover && link == "" {
		dctx, dcancel := context.WithTimeout(ctx, 3*time.Second)
		link, err = boardnet.Discover(dctx)
		dcancel()
		if err != nil {
			log.Error("discovery failed", "err", err)
			os.Exit(1)
		}
	}

	switch {
	case link != "":
		runFollower(ctx, board, link)
	case *share > 0:
		if err := runHost(ctx, board, *share); err != nil {
			log.Error("sharing failed", "err", err)
			os.Exit(1)
		}
	}

	board.Run()
}

func openFile(board *ui.App, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return board.Open(f)
}

// runHost serves the board to followers and advertises it on the LAN.
func runHost(ctx context.Context, board *ui.App, port int) error {
	log := state.Logger()
	hub := boardnet.NewHub()
	board.SetPublisher(hub.Publish)

	go func() {
		if err := boardnet.Serve(ctx, ":"+strconv.Itoa(port), hub); err != nil {
			log.Error("[Host] server stopped", "err", err)
		}
	}()

	ip, err := boardnet.GetOutgoingIP()
	if err != nil {
		return fmt.Errorf("local address: %w", err)
	}
	link := boardnet.ShareLink(ip, port)
	board.Window().SetTitle("AreaBoard - sharing " + link)
	log.Info("[Host] share link", "link", link)

	server, err := boardnet.Advertise(port, "")
	if err != nil {
		// Followers can still join with the link.
		log.Warn("[Host] mdns unavailable", "err", err)
		return nil
	}
	go func() {
		<-ctx.Done()
		server.Shutdown()
	}()
	return nil
}

// runFollower mirrors a shared board read-only.
func runFollower(ctx context.Context, board *ui.App, link string) {
	board.SetReadOnly()
	board.Window().SetTitle("AreaBoard - following " + link)

	go func() {
		err := boardnet.Follow(ctx, link, func(s state.Snapshot) {
			fyne.Do(func() {
				if err := board.ApplySnapshot(s); err != nil {
					state.Logger().Warn("[Follower] snapshot rejected", "layer", s.Layer, "err", err)
				}
			})
		})
		if err != nil && ctx.Err() == nil {
			state.Logger().Error("[Follower] disconnected", "err", err)
		}
	}()
}
