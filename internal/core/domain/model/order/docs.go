// Package order implements the order aggregate: the transactional lifecycle
// object bound one-to-one to a posted request. The aggregate owns the state
// machine governing who may act on an order and in which state, and enforces
// that offer acceptance binds a provider and final value exactly once.
package order
