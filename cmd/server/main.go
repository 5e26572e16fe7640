package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"credvault/internal/app/server/api"
	"credvault/internal/app/server/config"
	"credvault/internal/app/server/crypto"
	"credvault/internal/domain/credential"
	"credvault/internal/domain/schema"
	"credvault/internal/infrastructure/storage/postgres"
	"credvault/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env)

	if err := run(conf, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(conf *config.Config, log *slog.Logger) error {
	storage, err := postgres.New(conf)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer storage.Close()

	cipher, err := buildCipher(conf)
	if err != nil {
		return fmt.Errorf("init cipher: %w", err)
	}

	registry, err := schema.LoadDir(conf.Types.Dir)
	if err != nil {
		return fmt.Errorf("load credential types: %w", err)
	}

	// Live connectivity checks belong to the connector catalog, which this
	// service does not ship. Until one is plugged in every test is rejected.
	tester := credential.TesterFunc(func(_ context.Context, typeName string, _ credential.Data) credential.TestResult {
		return credential.TestResult{
			Status:  "error",
			Message: "no tester registered for type " + typeName,
		}
	})

	mux := api.New(api.Deps{
		Storage:  storage,
		Cipher:   cipher,
		Registry: registry,
		Tester:   tester,
	}, log)

	server := &http.Server{
		Addr:              conf.Server.RunAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "address", conf.Server.RunAddress, "env", conf.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func buildCipher(conf *config.Config) (*crypto.Encryptor, error) {
	if conf.Crypto.Key != "" {
		return crypto.New(conf.Crypto.Key)
	}
	return crypto.NewFromPassphrase(conf.Crypto.Passphrase), nil
}
