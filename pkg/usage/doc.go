// Package usage counts a user's records against each quota dimension.
//
// The Aggregator turns raw counts from a Store into a limits.Usage snapshot:
//
//   - transactions dated inside the calendar month of the reference time,
//     in the configured time zone
//   - debts whose status is open, partially_paid or overdue
//   - recurring transactions, paused ones included unless the policy says otherwise
//   - user-created categories; system categories never count
//
// Soft-deleted records are excluded by every Store implementation.
//
// The four counts are independent reads with no transactional link between them.
// Snapshot runs them concurrently and fails as a whole if any one fails: callers
// must treat a failed snapshot as "usage unknown", never as zero.
//
// Stores:
//
//   - NewPostgresStore: pgx queries against the tables created by the pg migrations
//   - NewMongoStore: CountDocuments over one collection per record type
//   - NewMemoryStore: in-process records for development and tests
package usage
