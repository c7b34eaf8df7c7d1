// Package order contains the Order aggregate: priced lines, immutable
// totals, and the forward-only lifecycle state machine
// (Pending, Confirmed, Processing, Shipped, Completed, Cancelled).
package order
