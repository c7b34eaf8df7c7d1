// Package services contains stateless domain services that implement the
// pricing and loyalty rules spanning multiple aggregates: promotion
// resolution, the ordered pricing pipeline, voucher redemption validation,
// and ranking recomputation. Services hold no mutable state and are safe for
// concurrent use; persistence and transactions stay in the application layer.
package services
