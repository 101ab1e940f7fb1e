package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/meteocheck/core/internal/config"
	http_init "github.com/meteocheck/core/internal/delivery/http/init"
	http_room "github.com/meteocheck/core/internal/delivery/http/room"
	ws_room "github.com/meteocheck/core/internal/delivery/ws/room"
	infra_memory_room "github.com/meteocheck/core/internal/infra/memory/room"
	usecase_room "github.com/meteocheck/core/internal/usecase/room"
)

func Go(cfg *config.Config) {
	logger := slog.Default()

	roomRepository := infra_memory_room.New()
	roomUC := usecase_room.New(roomRepository)

	hub := ws_room.NewHub(logger, cfg.WS.SendBuffer, roomUC.State)
	go hub.Run()

	if cfg.Rooms.SweepInterval > 0 {
		go runSweep(logger, roomUC, cfg.Rooms.TTL, cfg.Rooms.SweepInterval)
	}

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_room.New(roomUC, hub))
	controllerPool.Add(ws_room.NewController(hub, roomUC))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Host + ":" + cfg.HTTP.Port)
}

// runSweep evicts stale rooms on its own ticker, outside the mutation
// path.
func runSweep(logger *slog.Logger, uc *usecase_room.Usecase, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		evicted, err := uc.Cleanup(context.Background(), ttl)
		if err != nil {
			logger.Error("room sweep failed", "error", err)
			continue
		}
		if evicted > 0 {
			logger.Info("room sweep", "evicted", evicted)
		}
	}
}
