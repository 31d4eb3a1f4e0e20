// Package cart modela el carrito de una factura en edición. Es un valor con
// alcance de sesión/petición: cada operación de facturación construye el suyo.
package cart

import (
	"fmt"

	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// Valores de respaldo al rehidratar líneas guardadas sin datos completos.
const (
	FallbackName = "Item"
	FallbackUnit = "pcs"
)

var one = decimal.NewFromInt(1)

// Snapshot copia de los datos del artículo tomada al agregarlo. Permite facturar
// aunque el artículo se elimine del inventario después.
type Snapshot struct {
	Name    string
	HSN     string
	Unit    string
	Rate    decimal.Decimal
	GSTRate decimal.Decimal
}

// Entry línea del carrito.
type Entry struct {
	Key         string
	ItemID      *string
	Snapshot    Snapshot
	Quantity    decimal.Decimal
	Discount    decimal.Decimal
	Boxes       int // 0 = cantidad directa
	ItemsPerBox int
}

// UsesBoxes indica si la línea se cargó en modo cajas.
func (e Entry) UsesBoxes() bool { return e.Boxes > 0 && e.ItemsPerBox > 0 }

// Input datos para Add y Edit. Si UseBoxes es true la cantidad se deriva de
// Boxes × ItemsPerBox; si no, se usa Quantity.
type Input struct {
	Key         string  // clave local para artículos ad hoc
	ItemID      *string // artículo del inventario (también es la clave)
	Snapshot    Snapshot
	UseBoxes    bool
	Boxes       decimal.Decimal
	ItemsPerBox decimal.Decimal
	Quantity    decimal.Decimal
	Discount    decimal.Decimal
}

// Cart carrito de una factura. El cero no es válido; usar New.
type Cart struct {
	entries []Entry
	index   map[string]int
}

// New crea un carrito vacío.
func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// NormalizeBoxes aplica max(1, floor(x)) a cajas y artículos por caja y devuelve
// ambos junto con la cantidad resultante.
func NormalizeBoxes(boxes, itemsPerBox decimal.Decimal) (int, int, decimal.Decimal) {
	b := atLeastOne(boxes)
	ipb := atLeastOne(itemsPerBox)
	return int(b.IntPart()), int(ipb.IntPart()), b.Mul(ipb)
}

func atLeastOne(x decimal.Decimal) decimal.Decimal {
	f := x.Floor()
	if f.LessThan(one) {
		return one
	}
	return f
}

// Add agrega una línea. Si la clave ya existe, la cantidad se ACUMULA y la tarifa
// se reemplaza por la nueva (a diferencia de Edit, que reemplaza la cantidad).
func (c *Cart) Add(in Input) error {
	key, err := keyOf(in)
	if err != nil {
		return err
	}
	e, err := buildEntry(key, in)
	if err != nil {
		return err
	}
	if i, ok := c.index[key]; ok {
		prev := c.entries[i]
		e.Quantity = prev.Quantity.Add(e.Quantity)
		if !in.UseBoxes {
			e.Boxes, e.ItemsPerBox = 0, 0
		}
		c.entries[i] = e
		return nil
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, e)
	return nil
}

// Edit reemplaza cantidad, tarifa, cajas y descuento de una línea existente.
func (c *Cart) Edit(key string, in Input) error {
	i, ok := c.index[key]
	if !ok {
		return fmt.Errorf("línea %q: %w", key, domain.ErrNotFound)
	}
	prev := c.entries[i]
	if in.ItemID == nil {
		in.ItemID = prev.ItemID
	}
	if in.Snapshot.Name == "" {
		rate := in.Snapshot.Rate
		in.Snapshot = prev.Snapshot
		in.Snapshot.Rate = rate
	}
	e, err := buildEntry(key, in)
	if err != nil {
		return err
	}
	c.entries[i] = e
	return nil
}

// Remove elimina la línea con la clave dada.
func (c *Cart) Remove(key string) error {
	i, ok := c.index[key]
	if !ok {
		return fmt.Errorf("línea %q: %w", key, domain.ErrNotFound)
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, key)
	for k, j := range c.index {
		if j > i {
			c.index[k] = j - 1
		}
	}
	return nil
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.entries = nil
	c.index = make(map[string]int)
}

// Len cantidad de líneas.
func (c *Cart) Len() int { return len(c.entries) }

// Entries copia de las líneas en orden de inserción.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// PricedLine línea lista para persistir.
type PricedLine struct {
	Entry
	LineTotal decimal.Decimal
	Tax       decimal.Decimal
}

// Priced calcula los totales del carrito. Cada total de línea se redondea a 2
// decimales, que es lo que se guarda e imprime, y el total de la factura se arma
// con esas líneas. Un carrito vacío es un error de validación.
func (c *Cart) Priced(policy money.TaxPolicy) ([]PricedLine, money.Totals, error) {
	if len(c.entries) == 0 {
		return nil, money.Totals{}, domain.NewValidationError("items", "la factura debe tener al menos una línea")
	}
	lines := make([]money.Line, len(c.entries))
	for i, e := range c.entries {
		lines[i] = money.Line{
			Rate:     e.Snapshot.Rate,
			Quantity: e.Quantity,
			Discount: e.Discount,
			GSTRate:  e.Snapshot.GSTRate,
		}
	}
	exact := money.Compute(lines, policy)
	lineTotals := money.RoundLines(exact.LineTotals)
	priced := make([]PricedLine, len(c.entries))
	for i, e := range c.entries {
		priced[i] = PricedLine{
			Entry:     e,
			LineTotal: lineTotals[i],
			Tax:       money.Round2(policy.LineTax(exact.LineTotals[i], e.Snapshot.GSTRate)),
		}
	}
	return priced, money.TotalsFromLineTotals(lineTotals, exact.Tax), nil
}

// FromLineItems rehidrata un carrito desde las líneas guardadas de una factura
// (flujo de edición). Aplica los valores de respaldo de nombre, unidad y cantidad.
func FromLineItems(items []*entity.InvoiceLineItem) *Cart {
	c := New()
	for _, li := range items {
		key := li.ID
		if li.InventoryItemID != nil && *li.InventoryItemID != "" {
			key = *li.InventoryItemID
		}
		name := li.ItemName
		if name == "" {
			name = FallbackName
		}
		unit := li.ItemUnit
		if unit == "" {
			unit = FallbackUnit
		}
		qty := li.Quantity
		if !qty.IsPositive() {
			qty = one
		}
		e := Entry{
			Key:    key,
			ItemID: li.InventoryItemID,
			Snapshot: Snapshot{
				Name:    name,
				HSN:     li.ItemHSN,
				Unit:    unit,
				Rate:    money.ClampZero(li.UnitPrice),
				GSTRate: li.TaxRate,
			},
			Quantity:    qty,
			Discount:    li.Discount,
			Boxes:       li.Boxes,
			ItemsPerBox: li.ItemsPerBox,
		}
		if i, ok := c.index[key]; ok {
			// misma referencia repetida: se acumula como en Add
			e.Quantity = c.entries[i].Quantity.Add(e.Quantity)
			c.entries[i] = e
			continue
		}
		c.index[key] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

func keyOf(in Input) (string, error) {
	if in.ItemID != nil && *in.ItemID != "" {
		return *in.ItemID, nil
	}
	if in.Key != "" {
		return in.Key, nil
	}
	return "", domain.NewValidationError("item_id", "se requiere item_id o key")
}

func buildEntry(key string, in Input) (Entry, error) {
	if in.Discount.IsNegative() || in.Discount.GreaterThan(decimal.NewFromInt(100)) {
		return Entry{}, domain.NewValidationError("discount", "debe estar entre 0 y 100")
	}
	snap := in.Snapshot
	if snap.Name == "" {
		snap.Name = FallbackName
	}
	if snap.Unit == "" {
		snap.Unit = FallbackUnit
	}
	snap.Rate = money.Round2(money.ClampZero(snap.Rate))

	e := Entry{
		Key:      key,
		ItemID:   in.ItemID,
		Snapshot: snap,
		Discount: money.Round2(in.Discount),
	}
	if in.UseBoxes {
		e.Boxes, e.ItemsPerBox, e.Quantity = NormalizeBoxes(in.Boxes, in.ItemsPerBox)
	} else {
		e.Quantity = atLeastOne(in.Quantity)
	}
	return e, nil
}
