// @title         Herdbook API
// @version       0.1.0
// @description   Owner-scoped herd registry, animal register, and weight records

package main

import (
	"context"

	"herdbook/internal/adapters/identity"
	"herdbook/internal/modkit/httpkit"
	"herdbook/internal/platform/config"
	"herdbook/internal/platform/logger"
	phttp "herdbook/internal/platform/net/http"
	"herdbook/internal/platform/store"

	"herdbook/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	idCfg := root.Prefix("SERVICE_IDENTITY_")   // idCfg lives under SERVICE_IDENTITY_*

	// bring up logging early
	l := logger.Get()

	// ClickHouse only backs the activity feed, so it stays optional
	chURL := chCfg.MayString("DBURL", "")

	// open the platform store (postgres + optional CH adapter)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "herdbook-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled: chURL != "",
				URL:     chURL,
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// identity verifier turns bearer tokens into owner ids
	verifier := identity.NewClient(identity.Options{
		BaseURL: idCfg.MustString("URL"),
	})
	auth := httpkit.NewPortFunc(verifier.Verify)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			Auth:           auth,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
