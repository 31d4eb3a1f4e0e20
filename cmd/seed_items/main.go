// seed_items carga una lista de precios (.csv o .xlsx) en el inventario de un
// usuario. Los artículos existentes (mismo nombre) se actualizan.
//
// Uso: go run ./cmd/seed_items --email owner@example.com lista.csv
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/facturacion-india-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-india-api/internal/infrastructure/itemimport"
	"github.com/jhoicas/facturacion-india-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturacion-india-api/pkg/config"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	var email string

	cmd := &cobra.Command{
		Use:   "seed_items [archivo]",
		Short: "Importa artículos desde CSV (UTF-8 o Windows-1252) o XLSX",
		Example: `  seed_items --email owner@example.com precios.csv
  seed_items --email owner@example.com catalogo.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), email, args[0])
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del usuario dueño del inventario")
	_ = cmd.MarkFlagRequired("email")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "seed_items: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, email, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).WithComponent("seed_items")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	rows, err := itemimport.Parse(path, f)
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	user, err := postgres.NewUserRepository(pool).GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("usuario %s no encontrado", email)
	}

	res, err := usecase.NewInventoryUseCase(postgres.NewInventoryItemRepository(pool), log).Import(ctx, user.ID, rows)
	if err != nil {
		return err
	}
	for _, s := range res.Skipped {
		log.Warn().Msg(s)
	}
	fmt.Printf("creados: %d, actualizados: %d, omitidos: %d\n", res.Created, res.Updated, len(res.Skipped))
	return nil
}
