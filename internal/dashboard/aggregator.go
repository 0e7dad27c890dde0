package dashboard

import (
	"context"

	"github.com/rs/zerolog"
)

const (
	outcomeAccepted = "accepted"
	outcomeFailed   = "failed"
)

// Source is one endpoint able to list a resource.
type Source[T any] struct {
	Name  string
	Fetch func(ctx context.Context) ([]T, error)
}

type AttemptObserver interface {
	IncSourceAttempt(resource string, source string, outcome string)
}

// FetchFirstAvailable tries the sources in order and keeps the first list
// one of them returns, empty lists included. When every source fails the
// result is an empty list, never an error.
func FetchFirstAvailable[T any](ctx context.Context, log *zerolog.Logger, observer AttemptObserver, resource string, sources []Source[T]) []T {
	for _, source := range sources {
		if ctx.Err() != nil {
			break
		}

		items, err := source.Fetch(ctx)
		if err != nil {
			log.Info().
				Str("label", "aggregator").
				Str("resource", resource).
				Str("source", source.Name).
				Err(err).
				Msg("Source failed, trying next")

			observe(observer, resource, source.Name, outcomeFailed)
			continue
		}

		observe(observer, resource, source.Name, outcomeAccepted)

		if items == nil {
			return []T{}
		}
		return items
	}

	log.Warn().
		Str("label", "aggregator").
		Str("resource", resource).
		Int("sources", len(sources)).
		Msg("No source returned a list")

	return []T{}
}

func observe(observer AttemptObserver, resource string, source string, outcome string) {
	if observer == nil {
		return
	}
	observer.IncSourceAttempt(resource, source, outcome)
}
