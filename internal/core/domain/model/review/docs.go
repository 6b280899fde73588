// Package review implements the review entity: a 1..5 rating, with optional
// text and aspect scores, left by one party of a completed order about the
// other. Uniqueness per (order, author) is enforced by the store.
package review
