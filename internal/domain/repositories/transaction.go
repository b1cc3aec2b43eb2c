package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles store transactions. Implementations must give the
// single-active-root check and the cascade a serializable boundary so that
// concurrent writers cannot double-cascade or slip past the root invariant.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}
