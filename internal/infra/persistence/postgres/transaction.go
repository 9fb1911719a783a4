package postgres

import (
	"context"

	"shoplist/internal/domain/repository"
	"shoplist/internal/errors"

	"gorm.io/gorm"
)

type transactionManager struct {
	db *gorm.DB
}

// NewTransactionManager builds the TransactionManager all multi-step usecases
// run their writes through.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &transactionManager{db: db}
}

// txRepositoryFactory hands out repositories bound to one open transaction.
type txRepositoryFactory struct {
	tx *gorm.DB
}

func (f *txRepositoryFactory) OwnerRepo() repository.OwnerRepository {
	return NewOwnerRepository(f.tx)
}

func (f *txRepositoryFactory) ItemRepo() repository.ItemRepository {
	return NewItemRepository(f.tx)
}

func (f *txRepositoryFactory) GroupRepo() repository.UserGroupRepository {
	return NewUserGroupRepository(f.tx)
}

// Execute runs fn inside a single transaction. A returned error rolls back,
// a panic rolls back and is re-raised, anything else commits.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&txRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
