// Package session provides server-side sessions keyed by an opaque token.
//
// A Manager resolves the client's token through a Transport (an encrypted
// cookie by default, or a header) and loads the session from a Store.
// Stores are provided for process memory, Redis and MongoDB.
//
// Sessions are created lazily. A request without a valid token gets a
// pending session that has no token and no store record; the token is
// issued and the record created only once data has been stored. Unmodified
// sessions are not rewritten, only their activity is touched.
//
// # Usage
//
//	mgr, err := session.New(
//		session.WithConfig(cfg),
//		session.WithCookieManager(cookies),
//		session.WithStore(session.NewRedisStore(rdb, "session:")),
//	)
//	if err != nil {
//		return err
//	}
//	defer mgr.Close()
//
//	p := pipeline.New(pipeline.WithStages(mgr.Stage(), routes))
//
// Inside a handler:
//
//	sess := session.MustFromContext(r.Context())
//	sess.Set("theme", "dark")
//
// # Commit
//
// The stage persists the session right before the response headers are
// written, so a newly issued cookie still reaches the client, and again after
// downstream stages return. Changes made after the headers went out are saved
// for existing sessions and dropped, with a warning, for new ones.
//
// # Concurrency
//
// Requests presenting the same token are serialized within the process from
// load to final commit. Disable with WithSerializedAccess(false). Across
// processes the store's last write wins.
//
// # Error Handling
//
// Store failures while loading are returned to the pipeline. Unknown and
// expired tokens are not errors: they yield a pending session and the stale
// cookie is cleared.
package session
