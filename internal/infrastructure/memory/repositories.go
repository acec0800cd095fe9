package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ── Items ────────────────────────────────────────────────────────────────────

type itemRepo struct{ v view }

func (r itemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.v.write(func(d *data) error {
		for i := range d.Items {
			if d.Items[i].ID == item.ID {
				return domain.ErrDuplicate
			}
		}
		d.Items = append(d.Items, *item)
		return nil
	})
}

func (r itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.v.read(func(d *data) error {
		for i := range d.Items {
			if d.Items[i].ID == id {
				it := d.Items[i]
				out = &it
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r itemRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Item, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []*entity.Item
	err := r.v.read(func(d *data) error {
		for i := range d.Items {
			if _, ok := want[d.Items[i].ID]; ok {
				it := d.Items[i]
				out = append(out, &it)
			}
		}
		return nil
	})
	return out, err
}

func (r itemRepo) List(_ context.Context) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.v.read(func(d *data) error {
		out = make([]*entity.Item, 0, len(d.Items))
		for i := len(d.Items) - 1; i >= 0; i-- {
			it := d.Items[i]
			out = append(out, &it)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryDate.After(out[j].EntryDate) })
	return out, err
}

func (r itemRepo) UpdateStatus(_ context.Context, id string, from, to entity.ItemStatus, soldAt *time.Time) (bool, error) {
	updated := false
	err := r.v.write(func(d *data) error {
		for i := range d.Items {
			if d.Items[i].ID != id {
				continue
			}
			if d.Items[i].Status != from {
				return nil
			}
			d.Items[i].Status = to
			d.Items[i].SoldAt = soldAt
			updated = true
			return nil
		}
		return nil
	})
	return updated, err
}

func (r itemRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(d *data) error {
		for i := range d.Items {
			if d.Items[i].ID == id {
				d.Items = append(d.Items[:i], d.Items[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// ── Vendors ──────────────────────────────────────────────────────────────────

type vendorRepo struct{ v view }

func (r vendorRepo) Create(_ context.Context, vendor *entity.Vendor) error {
	return r.v.write(func(d *data) error {
		for i := range d.Vendors {
			if d.Vendors[i].ID == vendor.ID {
				return domain.ErrDuplicate
			}
		}
		d.Vendors = append(d.Vendors, *vendor)
		return nil
	})
}

func (r vendorRepo) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	var out *entity.Vendor
	err := r.v.read(func(d *data) error {
		for i := range d.Vendors {
			if d.Vendors[i].ID == id {
				v := d.Vendors[i]
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r vendorRepo) List(_ context.Context) ([]*entity.Vendor, error) {
	var out []*entity.Vendor
	err := r.v.read(func(d *data) error {
		out = make([]*entity.Vendor, 0, len(d.Vendors))
		for i := range d.Vendors {
			v := d.Vendors[i]
			out = append(out, &v)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return byName(out[i].Name, out[j].Name) })
	return out, err
}

func (r vendorRepo) AdjustBalance(_ context.Context, id string, delta decimal.Decimal) (bool, error) {
	applied := false
	err := r.v.write(func(d *data) error {
		for i := range d.Vendors {
			if d.Vendors[i].ID != id {
				continue
			}
			next := d.Vendors[i].Balance.Add(delta)
			if delta.IsNegative() && next.IsNegative() {
				return nil
			}
			d.Vendors[i].Balance = next
			applied = true
			return nil
		}
		return nil
	})
	return applied, err
}

type payoutRepo struct{ v view }

func (r payoutRepo) Create(_ context.Context, payout *entity.VendorPayout) error {
	return r.v.write(func(d *data) error {
		d.Payouts = append(d.Payouts, *payout)
		return nil
	})
}

func (r payoutRepo) ListByVendor(_ context.Context, vendorID string) ([]*entity.VendorPayout, error) {
	var out []*entity.VendorPayout
	err := r.v.read(func(d *data) error {
		for i := len(d.Payouts) - 1; i >= 0; i-- {
			if d.Payouts[i].VendorID == vendorID {
				p := d.Payouts[i]
				out = append(out, &p)
			}
		}
		return nil
	})
	return out, err
}

// ── Customers ────────────────────────────────────────────────────────────────

type customerRepo struct{ v view }

func (r customerRepo) Create(_ context.Context, customer *entity.Customer) error {
	return r.v.write(func(d *data) error {
		for i := range d.Customers {
			if d.Customers[i].ID == customer.ID {
				return domain.ErrDuplicate
			}
		}
		d.Customers = append(d.Customers, *customer)
		return nil
	})
}

func (r customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.read(func(d *data) error {
		for i := range d.Customers {
			if d.Customers[i].ID == id {
				c := d.Customers[i]
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r customerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.v.read(func(d *data) error {
		out = make([]*entity.Customer, 0, len(d.Customers))
		for i := range d.Customers {
			c := d.Customers[i]
			out = append(out, &c)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return byName(out[i].Name, out[j].Name) })
	return out, err
}

func (r customerRepo) AdjustCredit(_ context.Context, id string, delta decimal.Decimal) (bool, error) {
	applied := false
	err := r.v.write(func(d *data) error {
		for i := range d.Customers {
			if d.Customers[i].ID != id {
				continue
			}
			next := d.Customers[i].StoreCredit.Add(delta)
			if delta.IsNegative() && next.IsNegative() {
				return nil
			}
			d.Customers[i].StoreCredit = next
			applied = true
			return nil
		}
		return nil
	})
	return applied, err
}

type customerTxRepo struct{ v view }

func (r customerTxRepo) Create(_ context.Context, tx *entity.CustomerTransaction) error {
	return r.v.write(func(d *data) error {
		d.CustomerTxs = append(d.CustomerTxs, *tx)
		return nil
	})
}

func (r customerTxRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.CustomerTransaction, error) {
	var out []*entity.CustomerTransaction
	err := r.v.read(func(d *data) error {
		for i := len(d.CustomerTxs) - 1; i >= 0; i-- {
			if d.CustomerTxs[i].CustomerID == customerID {
				t := d.CustomerTxs[i]
				out = append(out, &t)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

// ── Sales ────────────────────────────────────────────────────────────────────

type saleRepo struct{ v view }

func (r saleRepo) Create(_ context.Context, sale *entity.Sale) (*entity.Sale, error) {
	stored := *sale
	stored.Items = nil
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	err := r.v.write(func(d *data) error {
		for i := range d.Sales {
			if d.Sales[i].ID == stored.ID {
				return domain.ErrDuplicate
			}
		}
		d.Sales = append(d.Sales, stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r saleRepo) AddItems(_ context.Context, items []entity.SaleItem) error {
	return r.v.write(func(d *data) error {
		d.SaleItems = append(d.SaleItems, items...)
		return nil
	})
}

func (r saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.read(func(d *data) error {
		for i := range d.Sales {
			if d.Sales[i].ID == id {
				s := d.Sales[i]
				s.Items = saleItemsOf(d, id)
				out = &s
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r saleRepo) List(_ context.Context) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.v.read(func(d *data) error {
		out = make([]*entity.Sale, 0, len(d.Sales))
		for i := len(d.Sales) - 1; i >= 0; i-- {
			s := d.Sales[i]
			s.Items = saleItemsOf(d, s.ID)
			out = append(out, &s)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func saleItemsOf(d *data, saleID string) []entity.SaleItem {
	var out []entity.SaleItem
	for _, si := range d.SaleItems {
		if si.SaleID == saleID {
			out = append(out, si)
		}
	}
	return out
}

// ── Coupons ──────────────────────────────────────────────────────────────────

type couponRepo struct{ v view }

func (r couponRepo) Create(_ context.Context, coupon *entity.Coupon) error {
	return r.v.write(func(d *data) error {
		for i := range d.Coupons {
			if d.Coupons[i].Code == coupon.Code {
				return domain.ErrDuplicate
			}
		}
		d.Coupons = append(d.Coupons, *coupon)
		return nil
	})
}

func (r couponRepo) GetByCode(_ context.Context, code string) (*entity.Coupon, error) {
	var out *entity.Coupon
	err := r.v.read(func(d *data) error {
		for i := range d.Coupons {
			if d.Coupons[i].Code == code {
				c := d.Coupons[i]
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r couponRepo) List(_ context.Context) ([]*entity.Coupon, error) {
	var out []*entity.Coupon
	err := r.v.read(func(d *data) error {
		out = make([]*entity.Coupon, 0, len(d.Coupons))
		for i := range d.Coupons {
			c := d.Coupons[i]
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func (r couponRepo) SetActive(_ context.Context, code string, active bool) error {
	return r.v.write(func(d *data) error {
		for i := range d.Coupons {
			if d.Coupons[i].Code == code {
				d.Coupons[i].Active = active
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// ── Profiles ─────────────────────────────────────────────────────────────────

type profileRepo struct{ v view }

func (r profileRepo) Create(_ context.Context, profile *entity.Profile) error {
	return r.v.write(func(d *data) error {
		for i := range d.Profiles {
			if d.Profiles[i].ID == profile.ID || d.Profiles[i].Email == profile.Email {
				return domain.ErrDuplicate
			}
		}
		d.Profiles = append(d.Profiles, *profile)
		return nil
	})
}

func (r profileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	return r.find(func(p *entity.Profile) bool { return p.ID == id })
}

func (r profileRepo) GetByEmail(_ context.Context, email string) (*entity.Profile, error) {
	return r.find(func(p *entity.Profile) bool { return p.Email == email })
}

func (r profileRepo) find(match func(p *entity.Profile) bool) (*entity.Profile, error) {
	var out *entity.Profile
	err := r.v.read(func(d *data) error {
		for i := range d.Profiles {
			if match(&d.Profiles[i]) {
				p := d.Profiles[i]
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r profileRepo) List(_ context.Context) ([]*entity.Profile, error) {
	var out []*entity.Profile
	err := r.v.read(func(d *data) error {
		out = make([]*entity.Profile, 0, len(d.Profiles))
		for i := range d.Profiles {
			p := d.Profiles[i]
			out = append(out, &p)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return byName(out[i].Name, out[j].Name) })
	return out, err
}

func (r profileRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.v.write(func(d *data) error {
		for i := range d.Profiles {
			if d.Profiles[i].ID == id {
				d.Profiles[i].Active = active
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r profileRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(d *data) error {
		for i := range d.Profiles {
			if d.Profiles[i].ID == id {
				d.Profiles = append(d.Profiles[:i], d.Profiles[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r profileRepo) CountActiveAdmins(_ context.Context) (int, error) {
	n := 0
	err := r.v.read(func(d *data) error {
		for i := range d.Profiles {
			if d.Profiles[i].Active && d.Profiles[i].IsAdmin() {
				n++
			}
		}
		return nil
	})
	return n, err
}

func byName(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
