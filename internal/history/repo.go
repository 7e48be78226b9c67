package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/skasun/fittrack/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

// stateKey is the single redis key holding the whole persisted history blob.
const stateKey = "fittrack::state"

var ErrStateNotFound = errors.New("history state not found")

// Repo persists the history state as one JSON blob in redis.
type Repo struct {
	rdb *redis.Client
}

func NewRepo(rdb *redis.Client) *Repo {
	return &Repo{
		rdb: rdb,
	}
}

func (r *Repo) Get(ctx context.Context) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cmd := r.rdb.Get(ctx, stateKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("redis get state: %w", err)
	}

	return []byte(cmd.Val()), nil
}

func (r *Repo) Set(ctx context.Context, stateJson []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// the blob never expires, it is the primary store, not a cache
	if err := r.rdb.Set(ctx, stateKey, stateJson, 0).Err(); err != nil {
		return fmt.Errorf("redis set state: %w", err)
	}
	return nil
}
