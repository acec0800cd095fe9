package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus estado de una pieza dentro del ciclo de vida del inventario.
type ItemStatus string

// Estados válidos de Item.
const (
	ItemStatusEvaluation ItemStatus = "EVALUATION" // recién ingresada, pendiente de aprobación
	ItemStatusForSale    ItemStatus = "FOR_SALE"   // aprobada y disponible en el PDV
	ItemStatusSold       ItemStatus = "SOLD"       // vendida en un checkout
	ItemStatusTraded     ItemStatus = "TRADED"     // recusada en evaluación (salió sin venta)
)

// Valid indica si s es uno de los estados conocidos.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusEvaluation, ItemStatusForSale, ItemStatusSold, ItemStatusTraded:
		return true
	}
	return false
}

// Label etiqueta para pantallas y recibos.
func (s ItemStatus) Label() string {
	switch s {
	case ItemStatusEvaluation:
		return "Avaliação"
	case ItemStatusForSale:
		return "À Venda"
	case ItemStatusSold:
		return "Vendido"
	case ItemStatusTraded:
		return "Recusado/Troca"
	}
	return string(s)
}

// ParseItemStatus convierte un string (sin distinguir mayúsculas) en ItemStatus.
func ParseItemStatus(s string) (ItemStatus, error) {
	st := ItemStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("estado de pieza desconocido: %q", s)
	}
	return st, nil
}

// ItemCondition estado de conservación de la prenda.
type ItemCondition string

// Condiciones válidas.
const (
	ConditionNew       ItemCondition = "NEW"
	ConditionExcellent ItemCondition = "EXCELLENT"
	ConditionGood      ItemCondition = "GOOD"
	ConditionFair      ItemCondition = "FAIR"
)

// Valid indica si c es una condición conocida.
func (c ItemCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionExcellent, ConditionGood, ConditionFair:
		return true
	}
	return false
}

// Label etiqueta en pt-BR usada en la tienda.
func (c ItemCondition) Label() string {
	switch c {
	case ConditionNew:
		return "Novo com Etiqueta"
	case ConditionExcellent:
		return "Excelente"
	case ConditionGood:
		return "Bom"
	case ConditionFair:
		return "Com Detalhes"
	}
	return string(c)
}

// ParseItemCondition acepta el código (NEW, GOOD...) o la etiqueta pt-BR.
func ParseItemCondition(s string) (ItemCondition, error) {
	s = strings.TrimSpace(s)
	c := ItemCondition(strings.ToUpper(s))
	if c.Valid() {
		return c, nil
	}
	for _, cand := range []ItemCondition{ConditionNew, ConditionExcellent, ConditionGood, ConditionFair} {
		if strings.EqualFold(cand.Label(), s) {
			return cand, nil
		}
	}
	return "", fmt.Errorf("condición desconocida: %q", s)
}

// TradeInProvenance marca de origen para piezas que entraron por troca.
const TradeInProvenance = "Origem: Troca"

// Item representa una pieza física (una unidad) del brechó.
// VendorID vacío significa pieza propia de la tienda; con valor, pieza en consignación.
type Item struct {
	ID          string
	ImageURL    string
	Category    string
	Size        string
	Condition   ItemCondition
	Price       decimal.Decimal
	Status      ItemStatus
	VendorID    string
	Description string
	EntryDate   time.Time
	SoldAt      *time.Time
}

// IsConsigned indica si la pieza pertenece a una proveedora.
func (i *Item) IsConsigned() bool { return i.VendorID != "" }
