package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"schooldocs_backend/internals/configs"
	database "schooldocs_backend/internals/databases"
	"schooldocs_backend/internals/seeds"
)

type options struct {
	seed bool
}

// parseFlags: migrate only by default; -seed also inserts missing templates.
func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.BoolVar(&opts.seed, "seed", false, "insert missing document templates after migrating")
	err := fs.Parse(args)
	return opts, err
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	configs.LoadEnv()
	log := zap.L().Named("migrate")
	defer func() { _ = zap.L().Sync() }()

	db := database.Get()
	defer database.Close(db)

	if err := database.Ping(db); err != nil {
		log.Fatal("database not reachable", zap.Error(err))
	}

	log.Info("running migrations", zap.Int("tables", len(database.Models())))
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if opts.seed {
		if err := seeds.RunAllSeeds(db); err != nil {
			log.Fatal("seeding failed", zap.Error(err))
		}
	}
	log.Info("migration completed")
}
