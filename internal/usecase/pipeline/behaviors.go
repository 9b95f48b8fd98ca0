package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"library-lending/internal/pkg/clock"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/shared"

	"github.com/go-playground/validator/v10"
)

const outcomeOK = "ok"

// SelfValidating payloads carry rules that need the current time.
type SelfValidating interface {
	Validate(now time.Time) error
}

func Logging(logger *slog.Logger) Behavior {
	return func(ctx context.Context, req Request, next Next) (any, error) {
		logger.DebugContext(ctx, "handling request", "request", req.Name, "kind", string(req.Kind))

		res, err := next(ctx)

		kind := errs.KindOf(err)
		switch kind {
		case "":
			logger.InfoContext(ctx, "request handled", "request", req.Name, "kind", string(req.Kind))
		case errs.KindInternal:
			logger.ErrorContext(ctx, "request failed",
				"request", req.Name,
				"kind", string(req.Kind),
				"error", err.Error(),
				"stack", errs.ExtractStackLines(err, 12))
		default:
			logger.WarnContext(ctx, "request rejected",
				"request", req.Name,
				"kind", string(req.Kind),
				"error_kind", string(kind),
				"error", err.Error())
		}
		return res, err
	}
}

func Timing(recorder shared.Recorder, logger *slog.Logger, clk clock.Clock, slowThreshold time.Duration) Behavior {
	return func(ctx context.Context, req Request, next Next) (any, error) {
		start := clk.Now()
		res, err := next(ctx)
		elapsed := clk.Now().Sub(start)

		outcome := outcomeOK
		if err != nil {
			outcome = string(errs.KindOf(err))
		}
		recorder.ObserveRequest(req.Name, string(req.Kind), outcome, elapsed)

		if slowThreshold > 0 && elapsed > slowThreshold {
			logger.WarnContext(ctx, "slow request",
				"request", req.Name,
				"elapsed_ms", elapsed.Milliseconds(),
				"threshold_ms", slowThreshold.Milliseconds())
		}
		return res, err
	}
}

// Validation rejects a payload before the handler runs: struct tags first, then SelfValidating.
func Validation(v *validator.Validate, clk clock.Clock) Behavior {
	return func(ctx context.Context, req Request, next Next) (any, error) {
		if req.Payload != nil {
			if err := validatePayload(ctx, v, req.Payload); err != nil {
				return nil, err
			}
			if sv, ok := req.Payload.(SelfValidating); ok {
				if err := sv.Validate(clk.Now()); err != nil {
					if !errs.Is(err, errs.ErrValidation) {
						err = errs.Mark(err, errs.ErrValidation)
					}
					return nil, err
				}
			}
		}
		return next(ctx)
	}
}

func validatePayload(ctx context.Context, v *validator.Validate, payload any) error {
	err := v.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		// not a struct, nothing to check
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.Wrap(err, "validate request")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errs.Validationf("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// NewValidator names fields after their json tag when one is present and adds the
// notblank rule for strings that must hold more than whitespace.
func NewValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() != reflect.String {
			return !f.IsZero()
		}
		return strings.TrimSpace(f.String()) != ""
	})
	if err != nil {
		return nil, errs.Wrap(err, "register notblank validation")
	}
	return v, nil
}
