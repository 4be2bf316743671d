package repositories

import "gorm.io/gorm"

// GORMUnitOfWork implements UnitOfWork on top of a GORM database transaction.
type GORMUnitOfWork struct {
	db *gorm.DB
}

// NewGORMUnitOfWork creates a new instance of GORMUnitOfWork.
func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	return &GORMUnitOfWork{
		db: db,
	}
}

// Do runs fn inside db.Transaction. Returning an error from fn rolls back
// everything written through the transaction-bound repositories.
func (u *GORMUnitOfWork) Do(fn func(tx RepositoryTx) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositoryTx{tx: tx})
	})
}

type gormRepositoryTx struct {
	tx *gorm.DB
}

func (t *gormRepositoryTx) Orders() OrderRepository {
	return NewGORMOrderRepository(t.tx)
}

func (t *gormRepositoryTx) Carts() CartRepository {
	return NewGORMCartRepository(t.tx)
}

func (t *gormRepositoryTx) Products() ProductRepository {
	return NewGORMProductRepository(t.tx)
}
