package commands

import (
	"context"

	"library-lending/internal/usecase/pipeline"
	"library-lending/internal/usecase/queries"
)

type bookCommandBus struct {
	next     BookCommands
	pipeline *pipeline.Pipeline
}

// NewBookCommandBus sends every call to next through p.
func NewBookCommandBus(next BookCommands, p *pipeline.Pipeline) BookCommands {
	return &bookCommandBus{next: next, pipeline: p}
}

func (b *bookCommandBus) CreateBook(ctx context.Context, cmd CreateBookCommand) (*queries.BookView, error) {
	return pipeline.Send(ctx, b.pipeline, command("CreateBook", cmd), func(ctx context.Context) (*queries.BookView, error) {
		return b.next.CreateBook(ctx, cmd)
	})
}

func (b *bookCommandBus) BorrowBook(ctx context.Context, cmd BorrowBookCommand) (*queries.BookView, error) {
	return pipeline.Send(ctx, b.pipeline, command("BorrowBook", cmd), func(ctx context.Context) (*queries.BookView, error) {
		return b.next.BorrowBook(ctx, cmd)
	})
}

func (b *bookCommandBus) ReturnBook(ctx context.Context, cmd ReturnBookCommand) (*queries.BookView, error) {
	return pipeline.Send(ctx, b.pipeline, command("ReturnBook", cmd), func(ctx context.Context) (*queries.BookView, error) {
		return b.next.ReturnBook(ctx, cmd)
	})
}

func command(name string, payload any) pipeline.Request {
	return pipeline.Request{Name: name, Kind: pipeline.KindCommand, Payload: payload}
}
