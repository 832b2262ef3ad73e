// Package rng provides the single seeded random source every generator,
// modifier, prefab placer, and simulator in this module draws from.
//
// # Determinism contract
//
// An identical seed produces an identical call sequence, and therefore an
// identical generator output, for any generator that consumes only this
// RNG (spec §4.1, testable property 4). RNG instances are not shared
// globally: WithSeed constructs a fresh *RNG, hands it to the callback, and
// lets the callback thread it explicitly through every function that
// samples randomness. There is no process-global generator to leak across
// goroutines.
//
// # Stage derivation
//
// Multi-stage pipelines that need more than one independent stream can
// derive sub-seeds with Derive, which combines the parent seed and a stage
// name through SHA-256 so that two stages never draw from the same sequence
// even when their config is otherwise identical. The theme and multi-level
// builders do not call Derive: they reuse or offset the caller's seed.
package rng
