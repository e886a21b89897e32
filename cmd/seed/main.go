// Package main provisions the reading tracker database: the admin account,
// the default tag vocabulary and, optionally, a set of sample items.
//
// Usage:
//
//	ADMIN_EMAIL=me@example.com ADMIN_PASSWORD=secret go run ./cmd/seed
//	go run ./cmd/seed --sample   # also add sample reading items
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/samber/do/v2"

	"github.com/readingtracker/readingtracker-server/internal/config"
	"github.com/readingtracker/readingtracker-server/internal/di"
	"github.com/readingtracker/readingtracker-server/internal/di/providers"
	"github.com/readingtracker/readingtracker-server/internal/logger"
	"github.com/readingtracker/readingtracker-server/internal/service"
)

// Registered before the container parses flag.CommandLine.
var withSamples = flag.Bool("sample", false, "Also create sample reading items when fewer than 40 exist")

func main() {
	injector := di.NewContainer()

	err := run(injector)
	_ = injector.Shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(injector do.Injector) error {
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return err
	}
	log := do.MustInvoke[*logger.Logger](injector)
	storeHandle, err := do.Invoke[*providers.StoreHandle](injector)
	if err != nil {
		return err
	}
	authService := do.MustInvoke[*service.AuthService](injector)
	tagService := do.MustInvoke[*service.TagService](injector)

	ctx := context.Background()

	user, created, err := authService.EnsureUser(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("admin user: %w", err)
	}
	if created {
		log.Info("Created admin user", "email", user.Email)
	} else {
		log.Info("Admin user already exists", "email", user.Email)
	}

	tagIDs, err := ensureTags(ctx, tagService)
	if err != nil {
		return err
	}
	log.Info("Seeded tags", "count", len(tagIDs))

	if !*withSamples {
		return nil
	}

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	n, err := seedSampleItems(ctx, storeHandle.Store, tagIDs, time.Now().UTC(), rng)
	if err != nil {
		return fmt.Errorf("sample items: %w", err)
	}
	if n == 0 {
		log.Info("Sample items already present")
	} else {
		log.Info("Seeded sample items", "count", n)
	}
	return nil
}
