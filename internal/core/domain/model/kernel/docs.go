// Package kernel contains shared value objects used across all aggregates:
// identifiers and monetary amounts. Value objects are immutable and must be
// created through their factory functions; zero values fail validation where
// a zero value is not a meaningful amount.
package kernel
