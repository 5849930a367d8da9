package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
)

// Route decides which store answers a call.
type Route struct {
	// Timeout bounds every primary attempt. Zero disables it.
	Timeout time.Duration
	Logger  logging.Logger
	// HasPrimary is false when no database is configured.
	HasPrimary bool
}

// IsDomainError reports errors that describe the request, not the store.
// Such errors from the primary are final and never trigger the fallback.
func IsDomainError(err error) bool {
	return errors.Is(err, common.ErrorNotFound) ||
		errors.Is(err, common.ErrEmailInUse) ||
		errors.Is(err, common.ErrValidation) ||
		errors.Is(err, common.ErrForbidden)
}

// Attempt runs primary, and on a store failure runs secondary instead. Only
// when both fail is an error wrapping common.ErrStoreUnavailable returned.
func Attempt[T any](ctx context.Context, r Route, op string, primary, secondary func(context.Context) (T, error)) (T, Source, error) {
	if r.HasPrimary {
		pctx, cancel := ctx, context.CancelFunc(func() {})
		if r.Timeout > 0 {
			pctx, cancel = context.WithTimeout(ctx, r.Timeout)
		}
		v, err := primary(pctx)
		cancel()

		if err == nil || IsDomainError(err) {
			return v, SourceDatabase, err
		}
		if ctx.Err() != nil {
			var zero T
			return zero, SourceDatabase, ctx.Err()
		}
		if r.Logger != nil {
			r.Logger.Warn(ctx, "durable store failed, serving from memory", "op", op, "error", err)
		}

		v, serr := secondary(ctx)
		if serr == nil || IsDomainError(serr) {
			return v, SourceMemory, serr
		}
		if r.Logger != nil {
			r.Logger.Error(ctx, "both stores failed", "op", op, "primary_error", err, "fallback_error", serr)
		}
		var zero T
		return zero, SourceMemory, fmt.Errorf("%w: %s: %v; fallback: %v", common.ErrStoreUnavailable, op, err, serr)
	}

	v, err := secondary(ctx)
	if err != nil && !IsDomainError(err) {
		var zero T
		return zero, SourceMemory, fmt.Errorf("%w: %s: %v", common.ErrStoreUnavailable, op, err)
	}
	return v, SourceMemory, err
}

// Fallback composes a durable store with an in-memory one. Every result is
// tagged with the store that produced it.
type Fallback[E any] struct {
	kind      string
	primary   Store[E]
	secondary Store[E]
	route     Route
}

// NewFallback builds a Fallback for one content kind. primary may be nil, in
// which case everything is served from secondary.
func NewFallback[E any](kind string, primary, secondary Store[E], timeout time.Duration, logger logging.Logger) *Fallback[E] {
	if logger != nil {
		logger = logger.With("module", "store", "kind", kind)
	}
	return &Fallback[E]{
		kind:      kind,
		primary:   primary,
		secondary: secondary,
		route:     Route{Timeout: timeout, Logger: logger, HasPrimary: primary != nil},
	}
}

func (f *Fallback[E]) Kind() string { return f.kind }

func (f *Fallback[E]) List(ctx context.Context, flt Filter) (ListResult[E], Source, error) {
	flt = flt.Normalize()
	return Attempt(ctx, f.route, "list",
		func(ctx context.Context) (ListResult[E], error) { return f.primary.List(ctx, flt) },
		func(ctx context.Context) (ListResult[E], error) { return f.secondary.List(ctx, flt) })
}

func (f *Fallback[E]) Get(ctx context.Context, id string) (E, Source, error) {
	return Attempt(ctx, f.route, "get",
		func(ctx context.Context) (E, error) { return f.primary.Get(ctx, id) },
		func(ctx context.Context) (E, error) { return f.secondary.Get(ctx, id) })
}

func (f *Fallback[E]) Create(ctx context.Context, e E) (E, Source, error) {
	return Attempt(ctx, f.route, "create",
		func(ctx context.Context) (E, error) { return f.primary.Create(ctx, e) },
		func(ctx context.Context) (E, error) { return f.secondary.Create(ctx, e) })
}

func (f *Fallback[E]) Update(ctx context.Context, e E) (E, Source, error) {
	return Attempt(ctx, f.route, "update",
		func(ctx context.Context) (E, error) { return f.primary.Update(ctx, e) },
		func(ctx context.Context) (E, error) { return f.secondary.Update(ctx, e) })
}

func (f *Fallback[E]) Delete(ctx context.Context, id string) (Source, error) {
	_, src, err := Attempt(ctx, f.route, "delete",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, f.primary.Delete(ctx, id) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, f.secondary.Delete(ctx, id) })
	return src, err
}
