package bucket

import (
	"context"
	"time"
)

// RunSweeper calls Sweep every interval until ctx is done. onSweep, if set,
// receives the number of buckets removed by each pass.
func (s *InMemoryBucketStore) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(int)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n := s.Sweep(ctx)
			if onSweep != nil {
				onSweep(n)
			}
		}
	}
}
