// Package assignment contains the Assignment aggregate: the append-only
// record of an order-to-driver match, including the ranking distance at
// match time and the driver notification outcome.
package assignment
