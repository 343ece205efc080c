// Package driver contains the Driver aggregate: the courier's identity,
// contact channel, last known position and the three switches that gate
// dispatch eligibility (online, available, approved).
package driver
