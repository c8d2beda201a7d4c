// Package workerpool implements the worker engine: fixed-size worker
// pools, the generic scheduler/poll/yield worker loop, scheduled
// periodic tasks, two-phase shutdown, and a handful of convenience
// operations (SeqWork, MapWork, FilterWork, DoWork, ReduceWork) for
// one-shot bulk work over a pool.
package workerpool
