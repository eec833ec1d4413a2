// seed carga el catálogo desde un products.json heredado y crea el usuario administrador inicial.
//
// Uso: go run ./cmd/seed -products data/json/products.json -admin-email admin@tienda.com -admin-password secreto
// Los productos existentes (mismo ID) se actualizan; al final se reescribe el espejo de productos.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/application/usecase"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
	"github.com/jhoicas/pos-billing-api/internal/infrastructure/jsonstore"
	inframongo "github.com/jhoicas/pos-billing-api/internal/infrastructure/mongo"
	"github.com/jhoicas/pos-billing-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-billing-api/pkg/config"
	"github.com/jhoicas/pos-billing-api/pkg/logger"
)

func main() {
	productsPath := flag.String("products", "", "ruta a products.json (formato heredado)")
	adminEmail := flag.String("admin-email", "", "email del administrador a crear")
	adminPassword := flag.String("admin-password", "", "password del administrador")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx := context.Background()
	if err := postgres.Migrate(cfg.DB, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if *adminEmail != "" {
		users := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
		_, err := users.Create(ctx, dto.CreateUserRequest{
			Email:    *adminEmail,
			Password: *adminPassword,
			Role:     entity.RoleSuperAdmin,
		})
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			log.Info().Str("email", *adminEmail).Msg("administrador ya existe")
		case err != nil:
			log.Fatal().Err(err).Msg("crear administrador")
		default:
			log.Info().Str("email", *adminEmail).Msg("administrador creado")
		}
	}

	if *productsPath == "" {
		return
	}
	data, err := os.ReadFile(*productsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("leer productos")
	}
	docs, err := dto.DecodeProductDocument(data)
	if err != nil {
		log.Fatal().Err(err).Msg("decodificar productos")
	}

	repo := postgres.NewProductRepository(pool)
	created, updated := 0, 0
	now := time.Now().UTC()
	for _, d := range docs {
		p := d.ToEntity()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		if p.ID == "" {
			log.Warn().Str("name", p.Name).Msg("producto sin id, se omite")
			continue
		}
		existing, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			log.Fatal().Err(err).Str("product_id", p.ID).Msg("buscar producto")
		}
		if existing != nil {
			if err := repo.Update(ctx, p); err != nil {
				log.Fatal().Err(err).Str("product_id", p.ID).Msg("actualizar producto")
			}
			updated++
			continue
		}
		if err := repo.Create(ctx, p); err != nil {
			log.Fatal().Err(err).Str("product_id", p.ID).Msg("crear producto")
		}
		created++
	}

	var mirror repository.ProductMirror = jsonstore.NewProductMirror(cfg.Storage.DataDir)
	if cfg.Storage.MirrorBackend == config.MirrorMongo {
		client, err := inframongo.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		defer func() { _ = inframongo.Disconnect(client) }()
		mirror = inframongo.NewProductMirror(client, cfg.Mongo.Database)
	}
	products := usecase.NewProductUseCase(repo, mirror, log)
	if _, err := products.SyncMirror(ctx); err != nil {
		log.Fatal().Err(err).Msg("sincronizar espejo")
	}
	log.Info().Int("created", created).Int("updated", updated).Msg("catálogo cargado")
}
