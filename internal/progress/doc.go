// Package progress is a ready-made animation for work done item by item.
//
// [Iterated] runs a handler over a list of items and, while it runs, keeps a
// frame on screen with the handler's log lines, timing statistics and a
// progress bar with a moving highlight and a centered percentage.
//
//	ids := []int{1, 2, 3}
//	stats, err := progress.New(ids, func(ctx context.Context, i, id int, log progress.LogFunc) error {
//		log(fmt.Sprintf("processing %d", id))
//		return sync(ctx, id)
//	}, progress.WithBarLength(60)).Run(ctx)
package progress
