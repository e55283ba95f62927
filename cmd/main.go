package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/twofactor-server/internal/api/grpc/context"
	"github.com/dtroode/twofactor-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/twofactor-server/internal/api/grpc/server"
	"github.com/dtroode/twofactor-server/internal/config"
	"github.com/dtroode/twofactor-server/internal/encryption"
	"github.com/dtroode/twofactor-server/internal/logger"
	"github.com/dtroode/twofactor-server/internal/model"
	"github.com/dtroode/twofactor-server/internal/qrcode"
	"github.com/dtroode/twofactor-server/internal/server"
	"github.com/dtroode/twofactor-server/internal/service"
	"github.com/dtroode/twofactor-server/internal/token"
	"github.com/dtroode/twofactor-server/internal/u2f"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Store.Driver, "error", err)
	}
	defer closeStore()

	if err := seedAccounts(ctx, store, cfg.Store.SeedAccounts, logger); err != nil {
		logger.Fatal("failed to seed accounts", "error", err)
	}

	encryptor := encryption.NewCTR()
	assertions := service.NewAssertions(token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL), logger)
	opts := []service.Option{service.WithMaxAttempts(cfg.Store.MaxAttempts)}

	totpService := service.NewTOTP(store, encryptor, qrcode.NewRenderer(cfg.TOTP.QRSize), assertions, logger, opts...)
	u2fService := service.NewU2F(store, encryptor, u2f.NewProtocol(u2f.Config{
		TrustedFacets:     cfg.U2F.TrustedFacets,
		VerifyAttestation: cfg.U2F.VerifyAttestation,
	}), assertions, logger, opts...)

	r := router.New(totpService, u2fService, assertions, encryptor, grpcctx.NewManager(), logger)
	grpcServer := registerGRPCServer(r, fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer

	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "store", cfg.Store.Driver)
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(grpcServer)

	r.SetServing(true)
	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	r.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := grpcServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerGRPCServer(r *router.Router, addr string) *grpcServer.GRPCServer {
	s := r.Register()

	reflection.Register(s)

	return grpcServer.NewGRPCServer(s, addr)
}
