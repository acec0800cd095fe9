package repository

import "context"

// Repos agrupa todos los puertos de persistencia atados a una misma conexión o transacción.
type Repos struct {
	Items       ItemRepository
	Vendors     VendorRepository
	Payouts     PayoutRepository
	Customers   CustomerRepository
	CustomerTxs CustomerTransactionRepository
	Sales       SaleRepository
	Coupons     CouponRepository
	Profiles    ProfileRepository
}

// TxRunner ejecuta fn dentro de una transacción del almacén, pasando repositorios atados a ella.
// Si fn devuelve error se hace rollback; en caso contrario commit.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(r Repos) error) error
}
