package ledger

import (
	"context"

	"finboard/internal/core"
)

// Ports for the collections owned by the ledger.
type (
	// TransactionStore keeps transactions ordered most recent first: by date
	// descending, ties broken by insertion order descending.
	TransactionStore interface {
		InsertTransaction(ctx context.Context, tx core.Transaction) error
		// DeleteTransaction reports whether a transaction was removed.
		DeleteTransaction(ctx context.Context, id string) (bool, error)
		// ListTransactions returns at most limit transactions; limit <= 0 means all.
		ListTransactions(ctx context.Context, limit int) ([]core.Transaction, error)
	}

	// GoalStore keeps goals in creation order.
	GoalStore interface {
		InsertGoal(ctx context.Context, g core.Goal) error
		// GetGoal returns a *core.NotFoundError when id is unknown.
		GetGoal(ctx context.Context, id string) (core.Goal, error)
		UpdateGoal(ctx context.Context, g core.Goal) error
		ListGoals(ctx context.Context) ([]core.Goal, error)
	}

	Store interface {
		TransactionStore
		GoalStore
	}
)
