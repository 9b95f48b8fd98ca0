package components

import (
	"log/slog"

	"library-lending/internal/infra/memstore"
	"library-lending/internal/infra/readstore"
	"library-lending/internal/infra/uow"
	"library-lending/internal/pkg/config"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/queries"
	"library-lending/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStorage,
	),
)

// Storage is the write side and both read stores of one backend.
type Storage struct {
	fx.Out

	UnitOfWork shared.UnitOfWork
	Books      queries.BookReadStore
	Ledger     queries.LedgerReadStore
}

type StorageParams struct {
	fx.In

	Config config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool
}

// NewStorage picks the backend from STORAGE_DRIVER.
func NewStorage(p StorageParams) (Storage, error) {
	if p.Config.Storage.Driver == config.StorageDriverMemory {
		p.Logger.Warn("using in-memory storage; data is lost on restart")
		store := memstore.NewStore()
		reads := memstore.NewReadStore(store)
		return Storage{
			UnitOfWork: memstore.NewUnitOfWork(store),
			Books:      reads,
			Ledger:     reads,
		}, nil
	}

	if p.Pool == nil {
		return Storage{}, errs.New("postgres storage selected but no database pool is available")
	}
	return Storage{
		UnitOfWork: uow.NewPostgresUoW(p.Pool),
		Books:      readstore.NewBookReadStore(p.Pool),
		Ledger:     readstore.NewLedgerReadStore(p.Pool),
	}, nil
}
