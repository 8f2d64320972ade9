package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tarefas/internal/auth"
	"tarefas/internal/config"
	"tarefas/internal/server"
	"tarefas/internal/service"
	"tarefas/internal/store"
	"tarefas/pkg/mq"
)

func main() {
	addr := flag.String("addr", "", "http listen address (overrides TAREFAS_HTTP_ADDR)")
	memory := flag.Bool("memory", false, "run with an in-memory store instead of MySQL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	var st service.TaskStore
	if *memory {
		st = store.NewMemory()
	} else {
		s, err := store.Open(cfg.StoreDSN)
		if err != nil {
			log.Fatalf("store: %v", err)
		}
		defer s.Close()
		st = s
	}

	gate := auth.NewGate(cfg.AuthUser, cfg.AuthPassword)
	svc := service.New(st, mq.NewLogPublisher(log.Default()))
	srv := server.New(svc, gate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("tarefas: listening on %s", cfg.HTTPAddr)
	if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server: %v", err)
	}
}
