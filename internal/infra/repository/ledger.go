package repository

import (
	"context"

	"library-lending/internal/domain/ledger"
	"library-lending/internal/infra"
	"library-lending/internal/infra/db"
	"library-lending/internal/infra/repository/converter"
	"library-lending/internal/pkg/pgconv"

	"github.com/oklog/ulid/v2"
)

// LedgerRepository appends borrow/return records. The table rejects UPDATE and DELETE.
type LedgerRepository struct {
	db db.DBTX
}

func NewLedgerRepository(dbtx db.DBTX) *LedgerRepository {
	return &LedgerRepository{db: dbtx}
}

func (r *LedgerRepository) Append(ctx context.Context, rec *ledger.Record) (*ledger.Record, error) {
	id := ulid.Make().String()
	query, args, err := appendRecordQuery(id, rec)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build append ledger query", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return nil, infra.WrapRepoErr("ledger record references unknown book", err, infra.KindForeignKeyViolated)
		}
		return nil, infra.WrapRepoErr("failed to append ledger record", err)
	}
	return rec.WithID(id), nil
}

func appendRecordQuery(id string, rec *ledger.Record) (string, []any, error) {
	return dialect.Insert(tableRecords).
		Rows(converter.LedgerToInsertRecord(id, rec)).
		Prepared(true).
		ToSQL()
}
