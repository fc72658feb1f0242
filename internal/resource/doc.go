// Package resource bounds the coordinator's background work: how many worker
// folds may run at once and how often workers may be drained into the aggregate.
package resource
