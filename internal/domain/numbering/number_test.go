package numbering_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jhoicas/facturacion-india-api/internal/domain/numbering"
	"github.com/stretchr/testify/assert"
)

type fixedSource struct{ n int }

func (f fixedSource) IntN(int) int { return f.n }

func TestNext_Formato(t *testing.T) {
	ist, _ := time.LoadLocation("Asia/Kolkata")
	g := numbering.NewGenerator(fixedSource{n: 42}, ist)

	// 31-dic 20:00 UTC ya es enero en IST
	now := time.Date(2025, 12, 31, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV/2601/0042", g.Next(now))
}

func TestNext_SufijoEnRango(t *testing.T) {
	g := numbering.NewGenerator(nil, nil)
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		n := g.Next(now)
		assert.True(t, numbering.Valid(n), n)
		assert.Equal(t, "INV/2603/", n[:9])
		assert.NotEqual(t, "9999", n[9:])
	}
}

func TestValid(t *testing.T) {
	assert.True(t, numbering.Valid("INV/2402/0001"))
	assert.False(t, numbering.Valid("INV/24/0001"))
	assert.False(t, numbering.Valid("FAC/2402/0001"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Invoice_INV_2402_0456.pdf", numbering.FileName("INV/2402/0456"))
}
