// Package valuemap records which value fingerprints a coverage-guided testing
// engine has observed.
//
// # ValueBitMap
//
// A ValueBitMap is a fixed set of 65536 bits. Every observed value (for
// example an operand pair of an intercepted comparison, folded into one word)
// is hashed to a bit with a plain modulo:
//
//	idx = value % 65536              // AddValue
//	idx = (value % 65371) % 65536    // AddValueModPrime
//
// AddValue reports whether the bit was new. Distinct values can share a bit;
// the map trades exactness for O(1), allocation-free recording.
//
// # Workers and the aggregate
//
// The intended lifecycle is one ValueBitMap per execution worker, drained
// into a long-lived aggregate after each execution:
//
//	agg := valuemap.NewAggregator(valuemap.WithLogger(valuemap.NewTextLogger(slog.LevelInfo)))
//	pool := valuemap.NewPool()
//
//	w := pool.Get()
//	for _, v := range observed {
//	    w.AddValue(v)
//	}
//	novel, err := agg.Drain(ctx, w) // w is empty afterwards
//	pool.Put(w)
//	if novel {
//	    // keep the input in the corpus
//	}
//
// MergeFrom is the primitive behind Drain: it ORs the source into the
// receiver, zeroes the source and recomputes the receiver's population count
// with a hardware popcount per word.
//
// # Concurrency
//
// ValueBitMap has no internal locking. A map must have a single writer, and
// both operands of MergeFrom must be quiescent during the call. Aggregator
// serialises all access to the aggregate it owns.
//
// # Export
//
// ForEach and All enumerate set bits in ascending order. ToRoaring, Diff and
// Aggregator.Snapshot export the features as roaring bitmaps for comparison.
package valuemap
