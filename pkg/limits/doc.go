// Package limits holds the quota vocabulary shared by the billing packages:
// the closed set of limit types, per-plan limit values, usage snapshots, and
// the pure arithmetic that decides whether a creation may proceed.
//
// Nothing here performs I/O. Counting records lives in package usage, resolving a
// user's plan lives in package billing, and the side-effecting gate that opens the
// upgrade prompt lives in package gate.
//
// Key concepts:
//
//   - LimitType: which quota a check or a denial refers to
//   - Limits: the numeric quota of a plan, Unlimited marks "no cap"
//   - Usage: the user's current counts for the same four dimensions
//   - Decision: the outcome of comparing usage to a limit
//
// Basic usage:
//
//	lim := limits.Limits{MonthlyTransactions: 10, ActiveDebts: 3, RecurringTransactions: 2, Categories: 5}
//	usage := limits.Usage{MonthlyTransactions: 10}
//
//	d, err := limits.Check(limits.Transactions, usage, lim)
//	if err != nil {
//	    // unknown limit type
//	}
//	if !d.Allowed {
//	    // 10/10 transactions used, show the upgrade prompt
//	}
//
// A check is allowed only while usage is strictly below the limit, so reaching the
// limit exactly blocks the next creation.
package limits
