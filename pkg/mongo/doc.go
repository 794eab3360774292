// Package mongo opens MongoDB connections for the document-backed usage store.
//
// Configuration comes from MONGODB_* environment variables. New retries the
// initial connect and ping, NewWithDatabase returns the configured database:
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := usage.NewMongoStore(db)
package mongo
