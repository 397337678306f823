// Package combat implements the turn-based ability system: characters holding a health
// pool and a resource pool, the abilities they activate, the damage calculator and target
// selection those abilities share, and the encounter that schedules turns.
//
// Every call is synchronous and single-threaded. Failed activations return a sentinel
// error wrapped with detail and leave all state untouched.
package combat
