// Package pipeline provides composable, pull-based sequence operators.
//
// Pipelines are lazy. Nothing runs until values are pulled via Collect,
// Drain, or ForEach, and each stage pulls from the previous one on demand.
// The statistics processor uses them to describe a load as a finite
// sequence of results: an in-flight marker followed by the outcome of a
// deferred fetch.
//
// # Operators
//
//   - From, Just, FromSlice, FromChan, Defer: sources
//   - Map, FlatMap, Filter, Tap: per-value stages
//   - Reduce: fold everything into one value
//   - Concat: join pipelines sequentially
//   - OnErrorReturn: turn an upstream error into a final value
//
// # Usage
//
//	fetch := pipeline.Defer(func(ctx context.Context) ([]int, error) {
//	    return load(ctx)
//	})
//	items := pipeline.FlatMap(fetch, func(ctx context.Context, xs []int) (pipeline.Iterator[int], error) {
//	    return pipeline.FromSlice(xs).Iter(ctx), nil
//	})
//	sum := pipeline.Reduce(items, 0, func(acc, n int) int { return acc + n })
//	out := pipeline.OnErrorReturn(sum, func(error) int { return -1 })
//	results, _ := pipeline.Collect(ctx, pipeline.Concat(pipeline.Just(0), out))
package pipeline
