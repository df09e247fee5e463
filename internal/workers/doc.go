/*
Package workers sizes worker pools from the CPUs the process may actually use.

Go sets GOMAXPROCS from the container CPU limit, while runtime.NumCPU still
reports the host. Count scales GOMAXPROCS by a per-workload multiplier:

	// Walking and stat-ing a tree is I/O-bound: 2 workers per CPU
	n := workers.ForIO(16)

	// Reading image headers mixes I/O with decoding: 1.5 per CPU
	n := workers.ForMixed(16)

The IMGINDEX_WORKERS environment variable overrides the calculation, still
capped by the limit argument. A limit of 0 means no cap.
*/
package workers
