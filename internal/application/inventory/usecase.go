package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/application/ports"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	lifecycle "github.com/jhoicas/brecho-pos/internal/domain/inventory"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
	"github.com/jhoicas/brecho-pos/internal/domain/settlement"
	"github.com/jhoicas/brecho-pos/pkg/logger"
	"github.com/jhoicas/brecho-pos/pkg/textnorm"
)

// ItemUseCase casos de uso de inventario: ingreso, evaluación y baja de piezas.
type ItemUseCase struct {
	items   repository.ItemRepository
	vendors repository.VendorRepository
	blobs   ports.BlobStore
	log     *logger.Logger
	now     func() time.Time
}

// NewItemUseCase construye el caso de uso. blobs puede ser nil si no se aceptan data URLs.
func NewItemUseCase(items repository.ItemRepository, vendors repository.VendorRepository, blobs ports.BlobStore, log *logger.Logger) *ItemUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ItemUseCase{
		items:   items,
		vendors: vendors,
		blobs:   blobs,
		log:     log.Component("inventory"),
		now:     time.Now,
	}
}

// Prepare valida el borrador, sube la imagen si hace falta y devuelve la pieza en EVALUATION sin persistir.
// La validación ocurre antes de cualquier subida.
func (uc *ItemUseCase) Prepare(ctx context.Context, in dto.CreateItemRequest) (*entity.Item, error) {
	image := strings.TrimSpace(in.Image)
	if image == "" {
		return nil, fmt.Errorf("%w: la imagen es obligatoria", domain.ErrInvalidInput)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: la categoría es obligatoria", domain.ErrInvalidInput)
	}
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: el precio debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !settlement.IsCents(in.Price) {
		return nil, fmt.Errorf("%w: el precio admite como máximo dos decimales", domain.ErrInvalidInput)
	}
	condition, err := entity.ParseItemCondition(in.Condition)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.VendorID != "" {
		v, err := uc.vendors.GetByID(ctx, in.VendorID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("%w: proveedora %s", domain.ErrNotFound, in.VendorID)
		}
	}
	url, err := resolveImage(ctx, uc.blobs, image)
	if err != nil {
		return nil, err
	}
	return &entity.Item{
		ID:          uuid.New().String(),
		ImageURL:    url,
		Category:    category,
		Size:        strings.TrimSpace(in.Size),
		Condition:   condition,
		Price:       in.Price,
		Status:      entity.ItemStatusEvaluation,
		VendorID:    in.VendorID,
		Description: in.Description,
		EntryDate:   uc.now(),
	}, nil
}

// Register ingresa una pieza nueva en EVALUATION.
func (uc *ItemUseCase) Register(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.Prepare(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", item.ID).Str("vendor_id", item.VendorID).
		Str("price", item.Price.StringFixed(2)).Msg("pieza registrada")
	return dto.NewItemResponse(item), nil
}

// Get obtiene una pieza por ID. Devuelve (nil, nil) si no existe.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	return dto.NewItemResponse(item), nil
}

// List devuelve las piezas de la más reciente a la más antigua, filtradas por estado y búsqueda.
func (uc *ItemUseCase) List(ctx context.Context, q dto.ListItemsQuery) ([]*dto.ItemResponse, error) {
	var status entity.ItemStatus
	if s := strings.TrimSpace(q.Status); s != "" && !strings.EqualFold(s, "ALL") {
		parsed, err := entity.ParseItemStatus(strings.ToUpper(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		status = parsed
	}
	all, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(all))
	for _, it := range all {
		if status != "" && it.Status != status {
			continue
		}
		if q.Search != "" && !textnorm.Contains(it.ID, q.Search) && !textnorm.Contains(it.Category, q.Search) {
			continue
		}
		out = append(out, dto.NewItemResponse(it))
	}
	return out, nil
}

// Approve pasa una pieza de EVALUATION a FOR_SALE.
func (uc *ItemUseCase) Approve(ctx context.Context, id string) (*dto.ItemResponse, error) {
	return uc.transition(ctx, id, entity.ItemStatusForSale)
}

// Reject pasa una pieza de EVALUATION a TRADED (salida sin venta).
func (uc *ItemUseCase) Reject(ctx context.Context, id string) (*dto.ItemResponse, error) {
	return uc.transition(ctx, id, entity.ItemStatusTraded)
}

func (uc *ItemUseCase) transition(ctx context.Context, id string, to entity.ItemStatus) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	from := item.Status
	if err := lifecycle.Transition(item, to, uc.now()); err != nil {
		return nil, err
	}
	ok, err := uc.items.UpdateStatus(ctx, id, from, to, item.SoldAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: la pieza cambió de estado durante la operación", domain.ErrInvalidTransition)
	}
	uc.log.Info().Str("item_id", id).Str("from", string(from)).Str("to", string(to)).Msg("estado de pieza actualizado")
	return dto.NewItemResponse(item), nil
}

// Remove elimina una pieza ya resuelta (SOLD o TRADED).
func (uc *ItemUseCase) Remove(ctx context.Context, id string) error {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if !lifecycle.CanDelete(item.Status) {
		return fmt.Errorf("%w: no se puede eliminar una pieza en %s", domain.ErrInvalidTransition, item.Status)
	}
	if err := uc.items.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("item_id", id).Msg("pieza eliminada")
	return nil
}
