// Package executor applies a drafted Book to a dataset. Each chapter runs
// against its own clone of the imported data, sequentially step by step;
// chapters themselves run on a pool of workers when the project enables
// parallel execution. A chapter failure is captured in its result and never
// disturbs sibling chapters.
package executor
