package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"portfolio-services/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies the SQL migrations under migrations/ with the atlas CLI. The dir
// uses golang-migrate file naming, so no atlas.sum is needed.
func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	workdir, err := atlasexec.NewWorkingDir(
		atlasexec.WithMigrations(os.DirFS(*dir)),
	)
	if err != nil {
		slog.Error("failed to prepare working directory", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := workdir.Close(); cerr != nil {
			slog.Warn("failed to clean working directory", "error", cerr)
		}
	}()

	client, err := atlasexec.NewClient(workdir.Path(), "atlas")
	if err != nil {
		slog.Error("failed to init atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.MigrateApply(context.Background(), &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: "file://migrations?format=golang-migrate",
	})
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied",
		"target", res.Target,
		"applied", len(res.Applied),
	)
}
