package main

import (
	"context"
	"flag"
	stdlog "log"

	"go.uber.org/zap"

	"github.com/visualvc/versionlog/pkg/api"
	"github.com/visualvc/versionlog/pkg/auth"
	"github.com/visualvc/versionlog/pkg/config"
	"github.com/visualvc/versionlog/pkg/ratelimit"
	"github.com/visualvc/versionlog/pkg/store"
	"github.com/visualvc/versionlog/pkg/version"
	"github.com/visualvc/versionlog/pkg/versions"
	"github.com/visualvc/versionlog/pkg/web"
)

func main() {
	debug := false
	flag.BoolVar(&debug, "debug", false, "enables debug mode")
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	log := setupLogger(debug)
	log.With("version", version.Version).Info("Starting versionlog")

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	cfg.Defaults()

	if debug {
		log.Infof("%#v", cfg)
	}

	ctx := context.Background()
	db, err := store.Open(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	creds := auth.NewCredentials(log, db.Users(), cfg.Auth.BcryptCost)
	sessions := auth.NewSessionManager(cfg.Auth.SessionCookieName, cfg.Auth.SecureCookies)

	registerLimit := ratelimit.New(ratelimit.FromRouteLimit(
		cfg.RateLimits.Register.PerMinute, cfg.RateLimits.Register.Burst, ratelimit.DefaultRegisterConfig()))
	loginLimit := ratelimit.New(ratelimit.FromRouteLimit(
		cfg.RateLimits.Login.PerMinute, cfg.RateLimits.Login.Burst, ratelimit.DefaultLoginConfig()))
	readLimit := ratelimit.New(ratelimit.FromRouteLimit(
		cfg.RateLimits.Read.PerMinute, cfg.RateLimits.Read.Burst, ratelimit.DefaultReadConfig()))
	writeLimit := ratelimit.New(ratelimit.FromRouteLimit(
		cfg.RateLimits.Write.PerMinute, cfg.RateLimits.Write.Burst, ratelimit.DefaultWriteConfig()))
	defer registerLimit.Stop()
	defer loginLimit.Stop()
	defer readLimit.Stop()
	defer writeLimit.Stop()

	server := api.NewServer(log.Desugar(), cfg, debug)
	server.Engine().SetHTMLTemplate(web.Templates())
	web.NewController(log, creds, sessions, registerLimit, loginLimit).Register(server.Engine())

	err = server.RegisterAll([]api.APIController{
		versions.NewController(log, db.Versions(), sessions.RequireAPI(), readLimit, writeLimit),
	})
	if err != nil {
		log.Fatalf("Error registering controllers: %v", err)
	}

	if err := server.Listen(); err != nil {
		log.Fatalf("Server terminated: %v", err)
	}
}

func setupLogger(debug bool) *zap.SugaredLogger {
	var zlog *zap.Logger
	var err error
	if debug {
		zlog, err = zap.NewDevelopment()
	} else {
		zlog, err = zap.NewProduction()
	}
	if err != nil {
		stdlog.Fatalf("failed to set up logger: %v", err)
	}
	return zlog.Sugar()
}
