package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ougirez/certenergy/internal/api"
	"github.com/ougirez/certenergy/internal/pkg/constants"
	"github.com/ougirez/certenergy/internal/pkg/logger"
	"github.com/ougirez/certenergy/internal/pkg/store"
	"github.com/ougirez/certenergy/internal/pkg/store/xpgx"
	"github.com/ougirez/certenergy/internal/service/auth"
	"github.com/ougirez/certenergy/internal/service/catalog"
	"github.com/ougirez/certenergy/internal/service/project"
	"github.com/spf13/viper"
)

const catalogRetryInterval = 30 * time.Second

func initConfig() error {
	viper.SetDefault(constants.ViperHTTPAddrKey, ":8080")
	viper.SetDefault(constants.ViperAllowOriginsKey, []string{"http://localhost:3000"})
	viper.SetDefault(constants.ViperShutdownTimeoutKey, 10*time.Second)
	viper.SetDefault(constants.ViperCatalogRetriesKey, 5)
	viper.SetDefault(constants.ViperCatalogTimeoutKey, 10*time.Second)
	viper.SetDefault(constants.ViperRecalcWorkersKey, 8)
	viper.SetDefault(constants.ViperLogLevelKey, "info")

	viper.SetEnvPrefix(constants.ViperEnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path := os.Getenv(constants.ViperConfigEnv); path != "" {
		viper.SetConfigFile(path)
		return viper.ReadInConfig()
	}

	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// awaitCatalogs keeps retrying until the catalogs load, then recomputes open projects.
func awaitCatalogs(ctx context.Context, catalogs *catalog.Service, projects *project.Service) {
	ticker := time.NewTicker(catalogRetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if _, err := catalogs.Load(ctx); err != nil {
			logger.Warnf(ctx, "energy catalogs still unavailable: %v", err)
			continue
		}
		if err := projects.RecalculateOpen(ctx); err != nil {
			logger.Errorf(ctx, "recompute after catalog load: %v", err)
		}
		return
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := logger.Init("info"); err != nil {
		panic(err)
	}
	if err := initConfig(); err != nil {
		logger.Fatal(ctx, err)
	}
	if err := logger.Init(viper.GetString(constants.ViperLogLevelKey)); err != nil {
		logger.Fatal(ctx, err)
	}
	defer logger.Sync()

	pool, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperDBDSNKey))
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer pool.Close()

	catalogs := catalog.NewCatalogService(
		viper.GetString(constants.ViperCatalogURLKey),
		viper.GetDuration(constants.ViperCatalogTimeoutKey),
		viper.GetUint64(constants.ViperCatalogRetriesKey),
	)
	projects := project.NewProjectService(store.NewStore(pool), catalogs, viper.GetInt(constants.ViperRecalcWorkersKey))

	if _, err := catalogs.Load(ctx); err != nil {
		logger.Warnf(ctx, "energy catalogs unavailable at startup, catalog-dependent fields stay unset: %v", err)
		go awaitCatalogs(ctx, catalogs, projects)
	}

	apiService, err := api.NewAPIService(
		api.Config{
			AllowOrigins: viper.GetStringSlice(constants.ViperAllowOriginsKey),
			Debug:        viper.GetString(constants.ViperLogLevelKey) == "debug",
		},
		projects,
		catalogs,
		auth.NewService(viper.GetString(constants.ViperSecretKey), auth.DefaultTokenTTL),
	)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	addr := viper.GetString(constants.ViperHTTPAddrKey)
	go apiService.Serve(addr)
	logger.Infof(ctx, "listening on %s", addr)

	<-ctx.Done()
	logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), viper.GetDuration(constants.ViperShutdownTimeoutKey))
	defer cancel()

	if err := apiService.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "http shutdown: %v", err)
	}
	if err := projects.Close(); err != nil {
		logger.Errorf(shutdownCtx, "stop projects: %v", err)
	}
}
