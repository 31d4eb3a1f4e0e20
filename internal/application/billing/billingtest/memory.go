// Package billingtest ofrece repositorios en memoria para probar los casos de uso
// de facturación sin base de datos. RunLedger copia el estado al empezar y lo
// restaura si la función falla, igual que un rollback.
package billingtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/application/billing"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu        sync.Mutex
	companies map[string]entity.Company
	invoices  map[string]entity.Invoice
	lines     map[string][]entity.InvoiceLineItem
	payments  map[string]entity.CompanyPayment
	items     map[string]entity.InventoryItem
	seller    map[string]entity.SellerInfo
	bank      map[string]entity.BankDetails
	users     map[string]entity.User

	// FailUpdatePending fuerza un error de almacenamiento en UpdatePending.
	FailUpdatePending bool
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		companies: map[string]entity.Company{},
		invoices:  map[string]entity.Invoice{},
		lines:     map[string][]entity.InvoiceLineItem{},
		payments:  map[string]entity.CompanyPayment{},
		items:     map[string]entity.InventoryItem{},
		seller:    map[string]entity.SellerInfo{},
		bank:      map[string]entity.BankDetails{},
		users:     map[string]entity.User{},
	}
}

// Companies repositorio de empresas.
func (s *Store) Companies() repository.CompanyRepository { return companyRepo{s} }

// Invoices repositorio de facturas.
func (s *Store) Invoices() repository.InvoiceRepository { return invoiceRepo{s} }

// Payments repositorio de pagos.
func (s *Store) Payments() repository.PaymentRepository { return paymentRepo{s} }

// Items repositorio del catálogo.
func (s *Store) Items() repository.InventoryItemRepository { return itemRepo{s} }

// Settings repositorio de emisor y banco.
func (s *Store) Settings() repository.SettingsRepository { return settingsRepo{s} }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// TxRunner ejecutor de transacciones con rollback en memoria.
func (s *Store) TxRunner() billing.LedgerTxRunner { return txRunner{s} }

// Pending saldo actual de una empresa (atajo para los tests).
func (s *Store) Pending(companyID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.companies[companyID].PendingAmount
}

// PaymentCount cantidad de pagos guardados.
func (s *Store) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}

type snapshot struct {
	companies map[string]entity.Company
	invoices  map[string]entity.Invoice
	lines     map[string][]entity.InvoiceLineItem
	payments  map[string]entity.CompanyPayment
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		companies: make(map[string]entity.Company, len(s.companies)),
		invoices:  make(map[string]entity.Invoice, len(s.invoices)),
		lines:     make(map[string][]entity.InvoiceLineItem, len(s.lines)),
		payments:  make(map[string]entity.CompanyPayment, len(s.payments)),
	}
	for k, v := range s.companies {
		snap.companies[k] = v
	}
	for k, v := range s.invoices {
		snap.invoices[k] = v
	}
	for k, v := range s.lines {
		snap.lines[k] = append([]entity.InvoiceLineItem(nil), v...)
	}
	for k, v := range s.payments {
		snap.payments[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = snap.companies
	s.invoices = snap.invoices
	s.lines = snap.lines
	s.payments = snap.payments
}

type txRunner struct{ s *Store }

func (t txRunner) RunLedger(ctx context.Context, fn func(billing.LedgerRepos) error) error {
	snap := t.s.snapshot()
	err := fn(billing.LedgerRepos{
		Companies: companyRepo{t.s},
		Invoices:  invoiceRepo{t.s},
		Payments:  paymentRepo{t.s},
	})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

// ── empresas ────────────────────────────────────────────────────────────────

type companyRepo struct{ s *Store }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.companies[c.ID] = *c
	return nil
}

func (r companyRepo) GetByID(_ context.Context, userID, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	return &c, nil
}

func (r companyRepo) GetForUpdate(ctx context.Context, userID, id string) (*entity.Company, error) {
	return r.GetByID(ctx, userID, id)
}

func (r companyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.companies[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	pending, last := cur.PendingAmount, cur.LastTransaction
	cur = *c
	cur.PendingAmount, cur.LastTransaction = pending, last
	r.s.companies[c.ID] = cur
	return nil
}

func (r companyRepo) UpdatePending(_ context.Context, userID, id string, pending decimal.Decimal, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailUpdatePending {
		return domain.ErrStorage
	}
	c, ok := r.s.companies[id]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	c.PendingAmount = pending
	c.LastTransaction = &at
	c.UpdatedAt = at
	r.s.companies[id] = c
	return nil
}

func (r companyRepo) List(_ context.Context, f repository.CompanyFilter) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Company
	for _, c := range r.s.companies {
		if c.UserID != f.UserID || c.IsDeleted != f.Deleted {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name+" "+c.GSTNo), strings.ToLower(f.Search)) {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, f.Limit, f.Offset), nil
}

func (r companyRepo) Count(ctx context.Context, f repository.CompanyFilter) (int, error) {
	f.Limit, f.Offset = 0, 0
	list, err := r.List(ctx, f)
	return len(list), err
}

func (r companyRepo) SoftDelete(_ context.Context, userID, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	c.IsDeleted = true
	c.DeletedAt = &at
	r.s.companies[id] = c
	return nil
}

func (r companyRepo) Restore(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	c.IsDeleted = false
	c.DeletedAt = nil
	r.s.companies[id] = c
	return nil
}

func (r companyRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.companies, id)
	for iid, inv := range r.s.invoices {
		if inv.CompanyID == id {
			delete(r.s.invoices, iid)
			delete(r.s.lines, iid)
		}
	}
	for pid, p := range r.s.payments {
		if p.CompanyID == id {
			delete(r.s.payments, pid)
		}
	}
	return nil
}

func (r companyRepo) ListDeletedBefore(_ context.Context, before time.Time) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Company
	for _, c := range r.s.companies {
		if c.IsDeleted && c.DeletedAt != nil && c.DeletedAt.Before(before) {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── facturas ────────────────────────────────────────────────────────────────

type invoiceRepo struct{ s *Store }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.invoices {
		if other.UserID == inv.UserID && other.Number == inv.Number {
			return domain.ErrDuplicate
		}
	}
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r invoiceRepo) CreateLineItems(_ context.Context, items []*entity.InvoiceLineItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, li := range items {
		r.s.lines[li.InvoiceID] = append(r.s.lines[li.InvoiceID], *li)
	}
	return nil
}

func (r invoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r invoiceRepo) GetByID(_ context.Context, userID, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, nil
	}
	return &inv, nil
}

func (r invoiceRepo) GetForUpdate(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, userID, id)
}

func (r invoiceRepo) GetByNumber(_ context.Context, userID, number string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invoices {
		if inv.UserID == userID && inv.Number == number {
			inv := inv
			return &inv, nil
		}
	}
	return nil, nil
}

func (r invoiceRepo) SearchByNumber(_ context.Context, userID, term string, limit int) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.UserID == userID && strings.Contains(strings.ToLower(inv.Number), strings.ToLower(term)) {
			inv := inv
			out = append(out, &inv)
		}
	}
	sortNewestFirst(out)
	return page(out, limit, 0), nil
}

func (r invoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.UserID != f.UserID || (f.CompanyID != "" && inv.CompanyID != f.CompanyID) {
			continue
		}
		inv := inv
		out = append(out, &inv)
	}
	sortNewestFirst(out)
	return page(out, f.Limit, f.Offset), nil
}

func (r invoiceRepo) Count(ctx context.Context, f repository.InvoiceFilter) (int, error) {
	f.Limit, f.Offset = 0, 0
	list, err := r.List(ctx, f)
	return len(list), err
}

func (r invoiceRepo) GetLineItems(_ context.Context, invoiceID string) ([]*entity.InvoiceLineItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyLines(r.s.lines[invoiceID]), nil
}

func (r invoiceRepo) GetLineItemsByInvoiceIDs(_ context.Context, ids []string) (map[string][]*entity.InvoiceLineItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string][]*entity.InvoiceLineItem, len(ids))
	for _, id := range ids {
		if l, ok := r.s.lines[id]; ok {
			out[id] = copyLines(l)
		}
	}
	return out, nil
}

func (r invoiceRepo) DeleteLineItems(_ context.Context, invoiceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.lines, invoiceID)
	return nil
}

func (r invoiceRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok || inv.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.invoices, id)
	delete(r.s.lines, id)
	return nil
}

// ── pagos ───────────────────────────────────────────────────────────────────

type paymentRepo struct{ s *Store }

func (r paymentRepo) Create(_ context.Context, p *entity.CompanyPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.IdempotencyKey != "" {
		for _, other := range r.s.payments {
			if other.UserID == p.UserID && other.IdempotencyKey == p.IdempotencyKey {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.payments[p.ID] = *p
	return nil
}

func (r paymentRepo) GetByID(_ context.Context, userID, id string) (*entity.CompanyPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return &p, nil
}

func (r paymentRepo) GetByIdempotencyKey(_ context.Context, userID, key string) (*entity.CompanyPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.UserID == userID && p.IdempotencyKey == key {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r paymentRepo) ListByCompany(_ context.Context, userID, companyID string) ([]*entity.CompanyPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CompanyPayment
	for _, p := range r.s.payments {
		if p.UserID == userID && (companyID == "" || p.CompanyID == companyID) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r paymentRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok || p.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.payments, id)
	return nil
}

// ── catálogo ────────────────────────────────────────────────────────────────

type itemRepo struct{ s *Store }

func (r itemRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[it.ID] = *it
	return nil
}

func (r itemRepo) GetByID(_ context.Context, userID, id string) (*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok || it.UserID != userID {
		return nil, nil
	}
	return &it, nil
}

func (r itemRepo) GetByName(_ context.Context, userID, name string) (*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.UserID == userID && strings.EqualFold(it.Name, name) {
			it := it
			return &it, nil
		}
	}
	return nil, nil
}

func (r itemRepo) Update(_ context.Context, it *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[it.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.items[it.ID] = *it
	return nil
}

func (r itemRepo) List(_ context.Context, userID, search string, limit, offset int) ([]*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		if it.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Name+" "+it.HSN), strings.ToLower(search)) {
			continue
		}
		it := it
		out = append(out, &it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r itemRepo) Count(ctx context.Context, userID, search string) (int, error) {
	list, err := r.List(ctx, userID, search, 0, 0)
	return len(list), err
}

func (r itemRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok || it.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	// ON DELETE SET NULL sobre las líneas
	for iid, lines := range r.s.lines {
		for i := range lines {
			if lines[i].InventoryItemID != nil && *lines[i].InventoryItemID == id {
				lines[i].InventoryItemID = nil
			}
		}
		r.s.lines[iid] = lines
	}
	return nil
}

// ── emisor y banco ──────────────────────────────────────────────────────────

type settingsRepo struct{ s *Store }

func (r settingsRepo) GetSeller(_ context.Context, userID string) (*entity.SellerInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.seller[userID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r settingsRepo) UpsertSeller(_ context.Context, v *entity.SellerInfo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seller[v.UserID] = *v
	return nil
}

func (r settingsRepo) GetBank(_ context.Context, userID string) (*entity.BankDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.bank[userID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r settingsRepo) UpsertBank(_ context.Context, v *entity.BankDetails) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bank[v.UserID] = *v
	return nil
}

// ── usuarios ────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func copyLines(in []entity.InvoiceLineItem) []*entity.InvoiceLineItem {
	out := make([]*entity.InvoiceLineItem, 0, len(in))
	for i := range in {
		li := in[i]
		out = append(out, &li)
	}
	return out
}

func sortNewestFirst(list []*entity.Invoice) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}

func page[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
