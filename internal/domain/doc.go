// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, catalog programs, program
// enrollments with their day completion records, and daily activity logs.
// It represents the heart of the system, independent of any specific
// infrastructure or delivery mechanism.
package domain
