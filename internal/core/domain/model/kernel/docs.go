// Package kernel contains shared value objects used across the domain model:
// entity identifiers (UUID) and geographic locations with the ranking
// distance used by the dispatch engine.
package kernel
