package export

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/minio/minio-go/v7"
)

const maxRetries = 3

// isRetryable checks if an upload error is worth retrying.
func isRetryable(err error) bool {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "SlowDown", "RequestTimeout", "InternalError", "ServiceUnavailable":
		return true
	}
	return resp.StatusCode >= 500
}

// backoff returns a duration for attempt n (0-indexed) with jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := range maxRetries {
		err = fn()
		if err == nil || !isRetryable(err) {
			return err
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
