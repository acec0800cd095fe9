package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
)

// Máquina de estados de la pieza (servicio de dominio):
//
//	EVALUATION -> FOR_SALE (aprobar) | TRADED (recusar)
//	FOR_SALE   -> SOLD (solo vía checkout)
//	SOLD, TRADED -> eliminadas del sistema
func CanTransition(from, to entity.ItemStatus) bool {
	switch from {
	case entity.ItemStatusEvaluation:
		return to == entity.ItemStatusForSale || to == entity.ItemStatusTraded
	case entity.ItemStatusForSale:
		return to == entity.ItemStatusSold
	case entity.ItemStatusSold, entity.ItemStatusTraded:
		return false
	}
	return false
}

// CanDelete indica si una pieza en status puede eliminarse (solo SOLD o TRADED).
func CanDelete(status entity.ItemStatus) bool {
	switch status {
	case entity.ItemStatusSold, entity.ItemStatusTraded:
		return true
	case entity.ItemStatusEvaluation, entity.ItemStatusForSale:
		return false
	}
	return false
}

// Transition aplica la transición sobre item o devuelve ErrInvalidTransition sin modificarlo.
// Al pasar a SOLD registra SoldAt.
func Transition(item *entity.Item, to entity.ItemStatus, now time.Time) error {
	if !CanTransition(item.Status, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, item.Status, to)
	}
	item.Status = to
	if to == entity.ItemStatusSold {
		t := now
		item.SoldAt = &t
	}
	return nil
}
