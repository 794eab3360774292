// Package logger builds the service's *slog.Logger.
//
// New takes functional options for format, level, static attributes and
// context extractors. Extractors run on every record and pull request-scoped
// values, such as the request id and the user id set by package identity, out
// of the context passed to the *Context logging methods.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, cfg.Name),
//	    logger.WithContextExtractors(identity.LoggerExtractors()...),
//	)
//	log.InfoContext(ctx, "limit reached", logger.PlanID(p.ID))
//
// Attribute helpers (Error, UserID, PlanID and friends) keep key names
// consistent across packages. Error and Errors return an empty attribute for
// nil errors so callers do not need a nil check.
package logger
