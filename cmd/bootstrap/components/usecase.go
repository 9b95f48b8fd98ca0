package components

import (
	"log/slog"

	"library-lending/internal/pkg/clock"
	"library-lending/internal/pkg/config"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/pipeline"
	"library-lending/internal/usecase/queries"
	"library-lending/internal/usecase/shared"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecasePipelineModule,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	pipeline.NewValidator,
	NewRetryPolicy,
)

// Commands run Logging -> Timing -> Validation. Queries skip validation; they carry no
// transaction and are never retried.
var usecasePipelineModule = fx.Module("usecase/pipeline",
	fx.Provide(
		fx.Annotate(
			NewCommandPipeline,
			fx.ResultTags(`name:"commandPipeline"`),
		),
		fx.Annotate(
			NewQueryPipeline,
			fx.ResultTags(`name:"queryPipeline"`),
		),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		fx.Annotate(
			commands.NewBookService,
			fx.ResultTags(`name:"bookService"`),
		),
		fx.Annotate(
			commands.NewBookCommandBus,
			fx.ParamTags(`name:"bookService"`, `name:"commandPipeline"`),
		),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		fx.Annotate(
			queries.NewBookQueries,
			fx.ResultTags(`name:"bookQueries"`),
		),
		fx.Annotate(
			queries.NewBookQueryBus,
			fx.ParamTags(`name:"bookQueries"`, `name:"queryPipeline"`),
		),
		fx.Annotate(
			queries.NewLedgerQueries,
			fx.ResultTags(`name:"ledgerQueries"`),
		),
		fx.Annotate(
			queries.NewLedgerQueryBus,
			fx.ParamTags(`name:"ledgerQueries"`, `name:"queryPipeline"`),
		),
	),
)

func NewRetryPolicy(cfg config.Config, logger *slog.Logger, recorder shared.Recorder) (*shared.ConflictRetryPolicy, error) {
	return shared.NewConflictRetryPolicy(
		shared.WithMaxAttempts(cfg.Retry.MaxAttempts),
		shared.WithBaseDelay(cfg.Retry.BaseDelay),
		shared.WithLogger(logger),
		shared.WithRecorder(recorder),
	)
}

func NewCommandPipeline(cfg config.Config, logger *slog.Logger, recorder shared.Recorder, clk clock.Clock, v *validator.Validate) *pipeline.Pipeline {
	return pipeline.New(
		pipeline.Logging(logger),
		pipeline.Timing(recorder, logger, clk, cfg.Pipeline.SlowThreshold),
		pipeline.Validation(v, clk),
	)
}

func NewQueryPipeline(cfg config.Config, logger *slog.Logger, recorder shared.Recorder, clk clock.Clock) *pipeline.Pipeline {
	return pipeline.New(
		pipeline.Logging(logger),
		pipeline.Timing(recorder, logger, clk, cfg.Pipeline.SlowThreshold),
	)
}
