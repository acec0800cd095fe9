// Package state expone la recarga explícita del estado completo del almacén.
package state

import (
	"context"
	"fmt"

	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
)

// StateUseCase arma el snapshot completo que consume la capa de presentación.
type StateUseCase struct {
	repos repository.Repos
}

// NewStateUseCase construye el caso de uso.
func NewStateUseCase(repos repository.Repos) *StateUseCase {
	return &StateUseCase{repos: repos}
}

// Reload lee todas las colecciones con su orden estable. Los perfiles se incluyen solo si includeProfiles.
func (uc *StateUseCase) Reload(ctx context.Context, includeProfiles bool) (*dto.StateResponse, error) {
	items, err := uc.repos.Items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("state: piezas: %w", err)
	}
	vendors, err := uc.repos.Vendors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("state: proveedoras: %w", err)
	}
	customers, err := uc.repos.Customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("state: clientes: %w", err)
	}
	coupons, err := uc.repos.Coupons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("state: cupones: %w", err)
	}
	sales, err := uc.repos.Sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("state: ventas: %w", err)
	}

	out := &dto.StateResponse{
		Items:     dto.NewItemResponses(items),
		Vendors:   make([]*dto.VendorResponse, 0, len(vendors)),
		Customers: make([]*dto.CustomerResponse, 0, len(customers)),
		Coupons:   make([]*dto.CouponResponse, 0, len(coupons)),
		Sales:     make([]*dto.SaleResponse, 0, len(sales)),
	}
	for _, v := range vendors {
		out.Vendors = append(out.Vendors, dto.NewVendorResponse(v))
	}
	for _, c := range customers {
		out.Customers = append(out.Customers, dto.NewCustomerResponse(c))
	}
	for _, c := range coupons {
		out.Coupons = append(out.Coupons, dto.NewCouponResponse(c))
	}
	for _, s := range sales {
		out.Sales = append(out.Sales, dto.NewSaleResponse(s))
	}
	if includeProfiles {
		profiles, err := uc.repos.Profiles.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("state: perfiles: %w", err)
		}
		out.Profiles = make([]*dto.ProfileResponse, 0, len(profiles))
		for _, p := range profiles {
			out.Profiles = append(out.Profiles, dto.NewProfileResponse(p))
		}
	}
	return out, nil
}
