package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	apitcp "mako/api/tcp"
	"mako/config"
	"mako/domain/book"
	"mako/engine"
	"mako/infra/journal"
	"mako/infra/sequence"
	"mako/jobs/broadcaster"
	"mako/jobs/orderfeed"
	"mako/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := newLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- Journal ----------------

	jnl, err := journal.Open(cfg.JournalDir)
	if err != nil {
		log.Fatal("journal init failed", zap.Error(err))
	}
	defer jnl.Close()

	// ---------------- Core ----------------

	b := book.New()
	eng := engine.New(b, engine.WallClock{})
	seq := sequence.New(0)
	svc := service.New(eng, seq, jnl, log)

	// ---------------- Kafka jobs ----------------

	if cfg.KafkaEnabled() {
		bc, err := broadcaster.New(jnl, cfg.KafkaBrokers, cfg.EventTopic, log)
		if err != nil {
			log.Fatal("broadcaster init failed", zap.Error(err))
		}
		defer bc.Close()
		go bc.Run(ctx, cfg.BroadcastInterval)

		feed := orderfeed.New(cfg.KafkaBrokers, cfg.OrderTopic, cfg.OrderGroupID, svc, log)
		defer feed.Close()
		go feed.Run(ctx)
	} else {
		log.Info("kafka disabled, running gateway only")
	}

	// ---------------- Gateway ----------------

	srv := apitcp.NewServer(svc, log)
	if err := srv.Serve(ctx, cfg.ListenAddr); err != nil {
		log.Fatal("gateway exited", zap.Error(err))
	}

	log.Info("shutdown complete")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
