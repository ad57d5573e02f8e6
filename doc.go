// Package localint simulates best-response dynamics among agents on a
// weighted directed network. Each agent occupies one node of a sparse
// adjacency structure, shares a common payoff matrix, and repeatedly revises
// its action to best respond to the weighted distribution of its neighbours'
// current actions.
//
// The engine supports two revision protocols: simultaneous, where every agent
// responds to the same pre-update snapshot and all updates commit at once,
// and sequential, where a single uniformly chosen agent revises per step.
// Trajectories of the whole population's action profile are produced eagerly
// via Simulate or lazily via Trajectory.
//
// The engine is single-threaded by contract: a Model must not be shared
// between goroutines without external synchronisation. Randomness (initial
// action seeding, sequential agent selection) always flows through an
// injected *rand.Rand so runs are reproducible.
package localint
