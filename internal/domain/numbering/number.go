package numbering

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
)

// Prefix prefijo de todos los números de factura.
const Prefix = "INV"

// maxSuffix el sufijo aleatorio va de 0000 a 9998.
const maxSuffix = 9999

var pattern = regexp.MustCompile(`^INV/\d{4}/\d{4}$`)

// Source fuente del sufijo aleatorio; inyectable en tests.
type Source interface {
	IntN(n int) int
}

// Generator genera números INV/YYMM/NNNN.
type Generator struct {
	rnd Source
	loc *time.Location
}

// NewGenerator construye el generador. rnd nil usa math/rand/v2; loc nil usa UTC.
func NewGenerator(rnd Source, loc *time.Location) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{rnd: rnd, loc: loc}
}

// Next devuelve un número nuevo para la fecha dada. No verifica unicidad; la
// restricción única de la base de datos detecta colisiones.
func (g *Generator) Next(now time.Time) string {
	t := now.In(g.loc)
	return fmt.Sprintf("%s/%02d%02d/%04d", Prefix, t.Year()%100, int(t.Month()), g.rnd.IntN(maxSuffix))
}

// Valid verifica el formato INV/YYMM/NNNN.
func Valid(number string) bool {
	return pattern.MatchString(number)
}

// FileName nombre del PDF: las barras se reemplazan por guiones bajos.
func FileName(number string) string {
	return "Invoice_" + strings.ReplaceAll(number, "/", "_") + ".pdf"
}
