// Package access resolves the effective role of the acting user and decides
// what that user may do with orders, media, chat messages, notifications and
// user records.
//
// Everything here except Resolver is a pure function of its arguments.
// Services call the predicates before touching the store and never mutate
// anything when a check fails.
package access
