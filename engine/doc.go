// Package engine is the deterministic command layer above the order
// book: it validates intents, stamps admissions, tracks order
// ownership, and assembles the ordered event sequence for each command.
package engine
