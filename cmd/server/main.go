// Command voltrace-server hosts the authoritative VoltRace game server: the
// WebSocket transport gateway, the room coordinator, the match engine, and
// the /healthz and /metrics HTTP endpoints. Flags mirror the teacher's
// flag-based server entrypoint, re-expressed through urfave/cli/v3.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/inconshreveable/log15/v3"
	"github.com/urfave/cli/v3"

	"github.com/voltrace/gameserver/internal/adapters"
	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/config"
	"github.com/voltrace/gameserver/internal/metrics"
	"github.com/voltrace/gameserver/internal/room"
	"github.com/voltrace/gameserver/internal/transport/ws"
)

func main() {
	cmd := &cli.Command{
		Name:  "voltrace-server",
		Usage: "run the VoltRace authoritative game server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Usage: "override VOLTRACE_LISTEN_ADDR"},
			&cli.StringFlag{Name: "content-dir", Usage: "override VOLTRACE_CONTENT_DIR"},
			&cli.StringFlag{Name: "energy-pack-file", Usage: "override VOLTRACE_ENERGY_PACK_FILE"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v := cmd.String("listen"); v != "" {
		cfg.ListenAddr = v
	}
	if v := cmd.String("content-dir"); v != "" {
		cfg.ContentDir = v
	}
	if v := cmd.String("energy-pack-file"); v != "" {
		cfg.EnergyPackFile = v
	}

	logger := log15.New()
	logger.SetHandler(log15.StreamHandler(os.Stdout, log15.LogfmtFormat()))

	cat, err := catalog.Load(cfg.ContentDir)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	packs, err := catalog.LoadEnergyPacks(cfg.EnergyPackFile)
	if err != nil {
		return fmt.Errorf("loading energy packs: %w", err)
	}

	presence := adapters.NewPresence()
	achievements := adapters.NewAchievementChecker()

	mgr := room.NewManager(cat, packs, presence, nil, logger)
	gw := ws.NewGateway(mgr, presence, achievements, logger)
	mgr.SetEventSink(gw)

	gwStop := make(chan struct{})
	go gw.Run(gwStop)
	go mgr.RunSweeper()

	router := mux.NewRouter()
	router.HandleFunc("/healthz", healthzHandler).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog", catalogHandler(cat)).Methods(http.MethodGet)
	router.HandleFunc("/ws", gw.ServeWS)

	server := &http.Server{Addr: cfg.ListenAddr, Handler: router}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr)
		errc <- server.ListenAndServe()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-sig:
		logger.Info("shutting down")
		close(gwStop)
		mgr.Stop()
		return server.Shutdown(context.Background())
	}
	return nil
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func catalogHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"kits": catalog.AllKits,
		})
	}
}
