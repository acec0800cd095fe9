// seed crea el primer perfil ADMIN si no hay ninguno y, opcionalmente, importa cupones desde un CSV.
//
// Uso:
//
//	SEED_ADMIN_EMAIL=ana@brecho.com SEED_ADMIN_PASSWORD=... go run ./cmd/seed [-coupons cupons.csv] [-latin1]
//
// El CSV tiene cabecera code;type;value[;active] (separador ';' o ',').
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/brecho-pos/internal/application/auth"
	"github.com/jhoicas/brecho-pos/internal/application/coupon"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
	"github.com/jhoicas/brecho-pos/internal/infrastructure/memory"
	"github.com/jhoicas/brecho-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/brecho-pos/pkg/config"
	"github.com/jhoicas/brecho-pos/pkg/logger"
)

func main() {
	couponsPath := flag.String("coupons", "", "CSV de cupones a importar")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1 (exportación de planilla)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")
	ctx := context.Background()

	repos, tx, closeStore, err := open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer closeStore()

	authUC := auth.NewAuthUseCase(repos.Profiles, tx, auth.JWTConfig{
		Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
	}, log)
	admin, created, err := authUC.EnsureAdmin(ctx, dto.CreateProfileRequest{
		Name:     os.Getenv("SEED_ADMIN_NAME"),
		Email:    os.Getenv("SEED_ADMIN_EMAIL"),
		Password: os.Getenv("SEED_ADMIN_PASSWORD"),
	})
	switch {
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	case created:
		log.Info().Str("email", admin.Email).Msg("administrador creado")
	default:
		log.Info().Msg("ya existe un administrador activo, nada que hacer")
	}

	if *couponsPath == "" {
		return
	}
	f, err := os.Open(*couponsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV de cupones")
	}
	defer f.Close()

	rows, err := ParseCouponsCSV(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV de cupones")
	}
	couponUC := coupon.NewCouponUseCase(repos.Coupons)
	var imported, skipped int
	for _, in := range rows {
		if _, err := couponUC.Create(ctx, in); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			log.Error().Err(err).Str("code", in.Code).Msg("cupón rechazado")
			skipped++
			continue
		}
		imported++
	}
	log.Info().Int("imported", imported).Int("skipped", skipped).Msg("cupones importados")
}

func open(ctx context.Context, cfg *config.Config) (repository.Repos, repository.TxRunner, func(), error) {
	if cfg.App.StoreDriver == "memory" {
		store, err := memory.Open(cfg.App.StorePath)
		if err != nil {
			return repository.Repos{}, nil, nil, err
		}
		return store.Repos(), store, func() {}, nil
	}
	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		return repository.Repos{}, nil, nil, err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return repository.Repos{}, nil, nil, err
	}
	return postgres.NewRepos(pool), postgres.NewTxRunner(pool), pool.Close, nil
}
