package tracked

import "golang.org/x/sync/errgroup"

// mapOrdered applies fn to every item with at most limit calls in flight
// (no cap when limit <= 0). results[i] always corresponds to items[i].
// fn cannot fail, so one slow or failing item never cancels the others.
func mapOrdered[T, R any](limit int, items []T, fn func(T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		g.Go(func() error {
			results[i] = fn(item)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
