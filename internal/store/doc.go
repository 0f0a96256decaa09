// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Stores exist for users, catalog programs, program enrollments (with
// their day completion records), and daily activity logs. Implementations
// that participate in multi-statement flows expose WithTx so services can
// compose operations inside one transaction via RunInTransaction.
package store
