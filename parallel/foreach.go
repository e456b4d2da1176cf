// Package parallel contains the bounded parallel ForEach used by the numeric helpers.
package parallel

import "context"

import "golang.org/x/sync/errgroup"

// ForEach executes body for every i in [0, length) with at most limit
// goroutines running at once, and returns after all of them finished.
func ForEach(length, limit int, body func(i int)) {
	_ = ForEachErr(length, limit, func(i int) error {
		body(i)
		return nil
	})
}

// ForEachErr is ForEach for a body which can fail. Iterations not yet started
// are skipped after the first error, which is returned.
func ForEachErr(length, limit int, body func(i int) error) error {
	if limit <= 0 {
		limit = 1 // Default to 1 if limit is zero or negative
	}
	if length <= 0 {
		return nil // No iterations to perform
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(limit)
	for i := 0; i < length; i++ {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			return body(i)
		})
	}
	return g.Wait()
}
