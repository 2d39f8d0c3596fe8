// Package mongo connects the document data store.
//
// Routes reach their collections through the *mongo.Database returned by
// NewWithDatabase; the session package can keep sessions in the same
// database. Connecting pings the server and retries a few times so a
// database that starts alongside the application does not fail the boot.
//
// # Usage
//
//	db, err := mongo.NewWithDatabase(ctx, cfg.Mongo)
//	if err != nil {
//		return err
//	}
//	defer mongo.Close(context.Background(), db)
//
//	check := mongo.Healthcheck(db.Client())
//
// # Configuration
//
// MONGODB_URL defaults to a local server and MONGODB_DATABASE to
// "home-data". Pool sizes, timeouts and retry behaviour have MONGODB_*
// variables of their own; see Config.
//
// # Error Handling
//
// Connection failures are joined with ErrFailedToConnectToMongo together with
// the last driver error. Failed pings from Healthcheck are joined with
// ErrHealthcheckFailed.
package mongo
