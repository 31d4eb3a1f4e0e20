package billing

import (
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/domain/money"
)

// Config reglas de facturación inyectadas desde pkg/config.
type Config struct {
	DueDays        int
	JunkRetention  time.Duration
	Tax            money.TaxPolicy
	NumberAttempts int
	Location       *time.Location
}

func (c Config) withDefaults() Config {
	if c.DueDays <= 0 {
		c.DueDays = 30
	}
	if c.JunkRetention <= 0 {
		c.JunkRetention = 30 * 24 * time.Hour
	}
	if c.NumberAttempts <= 0 {
		c.NumberAttempts = 5
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
	return c
}
