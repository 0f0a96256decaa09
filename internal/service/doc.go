// Package service holds the use-case layer between the HTTP handlers
// and the stores.
//
// Three services cover the API surface. EnrollmentService owns the
// enrollment lifecycle: enrolling (one active program per user),
// resolving the effective day, item and day completion, finalization
// and its side effects, and the program catalog reads. ProgressService
// owns the daily log plus the read models derived from it, the streak
// summary and the month calendar. UserService covers registration and
// the profile surface.
//
// Services receive their dependencies through constructors: repository
// ports wrapping the store interfaces, the pure progress engine, and
// optional collaborators (summary cache, event emitter) that may be nil
// when a deployment disables them. Multi-store writes run inside
// store.RunInTransaction, with each repository rebound to the shared
// transaction through WithTx; side effects that must not roll back with
// the transaction (completion notices, cache invalidation) run only
// after commit.
//
// Failures cross this layer as ServiceError values wrapping the store
// or domain cause, so handlers can map status codes with errors.Is
// while logs keep the full chain.
package service
