// purge_junk borra definitivamente las empresas que pasaron más de
// BILLING_JUNK_RETENTION_DAYS en la papelera, junto con sus facturas y pagos.
//
// Uso: go run ./cmd/purge_junk [--every 24h]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/application/billing"
	"github.com/jhoicas/facturacion-india-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturacion-india-api/pkg/config"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "purge_junk",
		Short: "Purga la papelera de empresas vencida",
		Long: `Borra definitivamente las empresas eliminadas cuya ventana de restauración
venció. Sin --every corre una vez; con --every repite hasta recibir SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), every)
		},
	}
	cmd.Flags().DurationVar(&every, "every", 0, "intervalo entre purgas (0 = una sola vez)")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "purge_junk: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, every time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).WithComponent("purge_junk")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	uc := billing.NewCompanyUseCase(
		postgres.NewCompanyRepository(pool),
		postgres.NewTxRunner(pool),
		billing.Config{JunkRetention: cfg.Billing.JunkRetention(), Location: cfg.Billing.Location()},
		log,
	)

	purge := func() error {
		res, err := uc.PurgeExpired(ctx)
		if err != nil {
			return err
		}
		if len(res.Failed) > 0 {
			log.Warn().Strs("failed", res.Failed).Msg("empresas que no se pudieron purgar")
		}
		return nil
	}

	if err := purge(); err != nil || every <= 0 {
		return err
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("purga detenida")
			return nil
		case <-ticker.C:
			if err := purge(); err != nil {
				log.Error().Err(err).Msg("falló la purga")
			}
		}
	}
}
