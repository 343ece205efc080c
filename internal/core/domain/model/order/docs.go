// Package order contains the Order aggregate and its lifecycle status
// machine. An order is created pending, matched to a driver exactly once,
// then progresses monotonically through pickup and transit to delivery,
// or is cancelled from any non-terminal state.
package order
