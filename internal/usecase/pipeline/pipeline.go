// Package pipeline runs commands and queries through an ordered list of behaviors.
// A behavior wraps everything after it, so the first behavior in the list is the outermost.
package pipeline

import (
	"context"

	"library-lending/internal/pkg/errs"
)

type Kind string

const (
	KindCommand Kind = "command"
	KindQuery   Kind = "query"
)

type Request struct {
	Name    string
	Kind    Kind
	Payload any
}

// Next invokes the rest of the pipeline, ending with the handler.
type Next func(ctx context.Context) (any, error)

type Behavior func(ctx context.Context, req Request, next Next) (any, error)

type Pipeline struct {
	behaviors []Behavior
}

func New(behaviors ...Behavior) *Pipeline {
	bs := make([]Behavior, len(behaviors))
	copy(bs, behaviors)
	return &Pipeline{behaviors: bs}
}

func (p *Pipeline) Len() int { return len(p.behaviors) }

func (p *Pipeline) Run(ctx context.Context, req Request, handler Next) (any, error) {
	next := handler
	for i := len(p.behaviors) - 1; i >= 0; i-- {
		behavior, inner := p.behaviors[i], next
		next = func(ctx context.Context) (any, error) {
			return behavior(ctx, req, inner)
		}
	}
	return next(ctx)
}

// Send runs handler through p and restores its static result type.
func Send[Res any](ctx context.Context, p *Pipeline, req Request, handler func(ctx context.Context) (Res, error)) (Res, error) {
	var zero Res
	out, err := p.Run(ctx, req, func(ctx context.Context) (any, error) {
		return handler(ctx)
	})
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	res, ok := out.(Res)
	if !ok {
		return zero, errs.Newf("pipeline %s: unexpected result type %T", req.Name, out)
	}
	return res, nil
}
