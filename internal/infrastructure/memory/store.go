// Package memory implementa todos los puertos de persistencia en memoria del proceso,
// con snapshot opcional a disco en JSON. Sirve para tests y para STORE_DRIVER=memory.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
)

// data estado completo del almacén, en orden de inserción.
type data struct {
	Items       []entity.Item                `json:"items"`
	Vendors     []entity.Vendor              `json:"vendors"`
	Payouts     []entity.VendorPayout        `json:"payouts"`
	Customers   []entity.Customer            `json:"customers"`
	CustomerTxs []entity.CustomerTransaction `json:"customer_transactions"`
	Sales       []entity.Sale                `json:"sales"`
	SaleItems   []entity.SaleItem            `json:"sale_items"`
	Coupons     []entity.Coupon              `json:"coupons"`
	Profiles    []entity.Profile             `json:"profiles"`
}

// clone copia todas las colecciones para que una transacción trabaje aislada.
func (d *data) clone() *data {
	return &data{
		Items:       append([]entity.Item(nil), d.Items...),
		Vendors:     append([]entity.Vendor(nil), d.Vendors...),
		Payouts:     append([]entity.VendorPayout(nil), d.Payouts...),
		Customers:   append([]entity.Customer(nil), d.Customers...),
		CustomerTxs: append([]entity.CustomerTransaction(nil), d.CustomerTxs...),
		Sales:       append([]entity.Sale(nil), d.Sales...),
		SaleItems:   append([]entity.SaleItem(nil), d.SaleItems...),
		Coupons:     append([]entity.Coupon(nil), d.Coupons...),
		Profiles:    append([]entity.Profile(nil), d.Profiles...),
	}
}

// Store almacén en memoria protegido por un mutex. Implementa repository.TxRunner.
type Store struct {
	mu           sync.Mutex
	d            *data
	snapshotPath string
}

var _ repository.TxRunner = (*Store)(nil)

// New crea un almacén vacío sin persistencia.
func New() *Store {
	return &Store{d: &data{}}
}

// Open crea un almacén que carga y guarda su estado en path. Un archivo inexistente equivale a vacío.
func Open(path string) (*Store, error) {
	s := New()
	s.snapshotPath = path
	loaded, err := readSnapshot(path)
	if err != nil {
		return nil, fmt.Errorf("memory: leer snapshot: %w", err)
	}
	if loaded != nil {
		s.d = loaded
	}
	return s, nil
}

// Repos devuelve los repositorios sin transacción: cada operación toma el lock por su cuenta.
func (s *Store) Repos() repository.Repos {
	return reposFor(view{s: s})
}

// RunInTx ejecuta fn sobre una copia del estado; si fn falla la copia se descarta.
// Las transacciones se serializan entre sí y con las operaciones sueltas.
func (s *Store) RunInTx(ctx context.Context, fn func(r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.d.clone()
	if err := fn(reposFor(view{tx: work})); err != nil {
		return err
	}
	if err := writeSnapshot(s.snapshotPath, work); err != nil {
		return fmt.Errorf("memory: guardar snapshot: %w", err)
	}
	s.d = work
	return nil
}

// view da acceso al estado: dentro de una transacción usa la copia, fuera toma el lock.
type view struct {
	s  *Store
	tx *data
}

func (v view) read(fn func(d *data) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.d)
}

func (v view) write(fn func(d *data) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	work := v.s.d.clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := writeSnapshot(v.s.snapshotPath, work); err != nil {
		return fmt.Errorf("memory: guardar snapshot: %w", err)
	}
	v.s.d = work
	return nil
}

func reposFor(v view) repository.Repos {
	return repository.Repos{
		Items:       itemRepo{v},
		Vendors:     vendorRepo{v},
		Payouts:     payoutRepo{v},
		Customers:   customerRepo{v},
		CustomerTxs: customerTxRepo{v},
		Sales:       saleRepo{v},
		Coupons:     couponRepo{v},
		Profiles:    profileRepo{v},
	}
}

func readSnapshot(path string) (*data, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var d data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// writeSnapshot escribe a un temporal y renombra para no dejar archivos a medias.
func writeSnapshot(path string, d *data) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	temp := path + ".tmp"
	if err := os.WriteFile(temp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(temp, path)
}
