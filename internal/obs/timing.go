package obs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// WithRunID returns a context carrying a solver run identifier, generating a
// fresh one when the context has none. Passing the same context through
// several solver calls correlates their log lines.
func WithRunID(ctx context.Context) (context.Context, string) {
	if id, ok := ctx.Value(RunIDKey).(string); ok && id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return context.WithValue(ctx, RunIDKey, id), id
}

// RunID returns the run identifier carried by ctx, or "" when absent.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	runID, _ := ctx.Value(RunIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("run_id=%s op=%s dur=%dms err=%v", runID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("run_id=%s op=%s dur=%dms", runID, name, dur.Milliseconds())
	}
}
