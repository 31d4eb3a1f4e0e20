package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-india-api/internal/domain/money"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// DefaultUnit unidad usada cuando el artículo no trae una.
const DefaultUnit = "pcs"

var maxGSTRate = decimal.NewFromInt(100)

// InventoryUseCase casos de uso CRUD para el catálogo de artículos.
type InventoryUseCase struct {
	repo repository.InventoryItemRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryItemRepository, log *logger.Logger) *InventoryUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryUseCase{repo: repo, log: log.WithComponent("inventory"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *InventoryUseCase) WithClock(now func() time.Time) *InventoryUseCase {
	uc.now = now
	return uc
}

// Create crea un artículo. El nombre es único por usuario (sin distinguir mayúsculas).
func (uc *InventoryUseCase) Create(ctx context.Context, userID string, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	now := uc.now()
	item := &entity.InventoryItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		HSN:       strings.TrimSpace(in.HSN),
		Category:  strings.TrimSpace(in.Category),
		Rate:      in.Rate,
		Stock:     in.Stock,
		Unit:      strings.TrimSpace(in.Unit),
		GSTRate:   in.GSTRate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(ctx, userID, item.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Get obtiene un artículo del usuario.
func (uc *InventoryUseCase) Get(ctx context.Context, userID, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update aplica los campos presentes y vuelve a validar.
func (uc *InventoryUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if !strings.EqualFold(name, item.Name) {
			other, err := uc.repo.GetByName(ctx, userID, name)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != item.ID {
				return nil, domain.ErrDuplicate
			}
		}
		item.Name = name
	}
	if in.HSN != nil {
		item.HSN = strings.TrimSpace(*in.HSN)
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.Rate != nil {
		item.Rate = *in.Rate
	}
	if in.Stock != nil {
		item.Stock = *in.Stock
	}
	if in.Unit != nil {
		item.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.GSTRate != nil {
		item.GSTRate = *in.GSTRate
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	item.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista artículos por nombre, con búsqueda opcional por nombre o HSN.
func (uc *InventoryUseCase) List(ctx context.Context, userID, search string, page dto.PageRequest) (*dto.InventoryItemListResponse, error) {
	page.Normalize()
	search = strings.TrimSpace(search)
	list, err := uc.repo.List(ctx, userID, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, userID, search)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.InventoryItemListResponse{
		Items: items,
		Page:  dto.NewPageResponse(page, total),
	}, nil
}

// Delete elimina el artículo. Las líneas de factura conservan su copia.
func (uc *InventoryUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.repo.Delete(ctx, userID, id)
}

// Import crea o actualiza artículos por nombre. Las filas inválidas se
// omiten y se informan; un error de almacenamiento corta la importación.
func (uc *InventoryUseCase) Import(ctx context.Context, userID string, rows []dto.CreateInventoryItemRequest) (*dto.ImportResult, error) {
	res := &dto.ImportResult{}
	for i, row := range rows {
		existing, err := uc.repo.GetByName(ctx, userID, strings.TrimSpace(row.Name))
		if err != nil {
			return res, fmt.Errorf("importar fila %d: %w", i+1, err)
		}
		if existing == nil {
			if _, err := uc.Create(ctx, userID, row); err != nil {
				if domain.KindOf(err) == domain.KindStorageFailure {
					return res, fmt.Errorf("importar fila %d: %w", i+1, err)
				}
				res.Skipped = append(res.Skipped, fmt.Sprintf("fila %d: %v", i+1, err))
				continue
			}
			res.Created++
			continue
		}
		upd := dto.UpdateInventoryItemRequest{
			HSN:     &row.HSN,
			Rate:    &row.Rate,
			Unit:    &row.Unit,
			GSTRate: &row.GSTRate,
		}
		if row.Category != "" {
			upd.Category = &row.Category
		}
		if _, err := uc.Update(ctx, userID, existing.ID, upd); err != nil {
			if domain.KindOf(err) == domain.KindStorageFailure {
				return res, fmt.Errorf("importar fila %d: %w", i+1, err)
			}
			res.Skipped = append(res.Skipped, fmt.Sprintf("fila %d: %v", i+1, err))
			continue
		}
		res.Updated++
	}
	uc.log.Info().Str("user_id", userID).Int("created", res.Created).Int("updated", res.Updated).
		Int("skipped", len(res.Skipped)).Msg("importación de artículos")
	return res, nil
}

func validateItem(it *entity.InventoryItem) error {
	if it.Name == "" {
		return domain.NewValidationError("name", "requerido")
	}
	if it.HSN == "" {
		return domain.NewValidationError("hsn", "requerido")
	}
	if it.Rate.IsNegative() {
		return domain.NewValidationError("rate", "no puede ser negativo")
	}
	if it.GSTRate.IsNegative() || it.GSTRate.GreaterThan(maxGSTRate) {
		return domain.NewValidationError("gst_rate", "debe estar entre 0 y 100")
	}
	if it.Stock < 0 {
		return domain.NewValidationError("stock", "no puede ser negativo")
	}
	if it.Unit == "" {
		it.Unit = DefaultUnit
	}
	it.Rate = money.Round2(it.Rate)
	it.GSTRate = money.Round2(it.GSTRate)
	return nil
}

func toItemResponse(it *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		HSN:       it.HSN,
		Category:  it.Category,
		Rate:      it.Rate,
		Stock:     it.Stock,
		Unit:      it.Unit,
		GSTRate:   it.GSTRate,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}
