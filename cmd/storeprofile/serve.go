package main

import (
	"fmt"

	spgin "github.com/fwojciec/storeprofile/gin"
)

// Run executes the serve command until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config.Server

	handler := spgin.NewHandler(deps.Extractor, deps.Profiles, deps.Logger)
	router := spgin.NewRouter(spgin.Config{
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
	}, handler)

	fmt.Fprintf(deps.Stderr, "Listening on %s\n", cfg.Addr)
	return spgin.NewServer(cfg.Addr, router).Run(deps.Ctx)
}
