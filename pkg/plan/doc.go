// Package plan provides the subscription plan catalog: tier definitions with
// prices and quota limits, the sources they are loaded from, and the plan
// comparison used by the upgrade prompt.
//
// Plans are owned by the platform and shared by every user. A Catalog is built
// once at startup from a Source and is read-only afterwards, so it is safe for
// concurrent use without locking.
//
// # Sources
//
//   - NewMemorySource: plans given in code (DefaultPlans for the built-in tiers)
//   - NewFileSource: a YAML (.yaml, .yml) or TOML (.toml) file
//   - NewS3Source: the same file formats stored as an S3 object
//   - NewPostgresSource: the plans table created by the pg migrations
//
// # Usage
//
//	catalog, err := plan.NewCatalog(ctx, plan.NewFileSource("plans.yaml"),
//	    plan.WithFreePlanID("free"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	free := catalog.Free()
//	premium, err := catalog.Get("premium")
//	diff := plan.Compare(free, premium)
//
// Limits use limits.Unlimited as the "no cap" sentinel. A catalog without an
// active free plan is rejected, since users without an assignment fall back to it.
package plan
