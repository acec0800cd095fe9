// migration aplica o revierte las migraciones SQL embebidas en el binario.
//
// Uso: go run ./cmd/migration [up|down|version|force N]
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"

	"github.com/jhoicas/brecho-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/brecho-pos/pkg/config"
	"github.com/jhoicas/brecho-pos/pkg/logger"
)

func main() {
	// .env es opcional; las variables del entorno tienen prioridad.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migration")

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Str("dsn", postgres.Describe(cfg.DB)).Msg("inicializar migraciones")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "force":
		if len(os.Args) < 3 {
			log.Fatal().Msg("uso: migration force <version>")
		}
		v, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			log.Fatal().Err(convErr).Msg("versión inválida")
		}
		err = m.Force(v)
	case "version":
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido (up|down|version|force)")
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		log.Fatal().Err(verr).Msg("leer versión")
	}
	log.Info().Str("cmd", cmd).Uint("version", version).Bool("dirty", dirty).Msg("migraciones al día")
}
