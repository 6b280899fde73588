// Package conversation implements the per-order message thread. Every order
// owns exactly one conversation; the client is a participant from the start
// and each offering provider is added on their first offer.
package conversation
