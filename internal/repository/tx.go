package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// cascadeStep is one statement executed as part of an atomic cascade.
type cascadeStep struct {
	label string
	query string
}

// deleteCascade runs the dependent deletes and the final parent delete in one transaction.
// The parent statement must be last; sql.ErrNoRows is returned when it removed nothing.
func deleteCascade(ctx context.Context, db *sqlx.DB, id string, steps ...cascadeStep) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cascade tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	for _, step := range steps {
		if res, err = tx.ExecContext(ctx, step.query, id); err != nil {
			return fmt.Errorf("%s: %w", step.label, err)
		}
	}

	if err = requireAffected(res); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit cascade tx: %w", err)
	}
	return nil
}

func requireAffected(res sql.Result) error {
	if res == nil {
		return sql.ErrNoRows
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
