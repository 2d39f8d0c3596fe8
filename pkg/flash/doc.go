// Package flash implements session-scoped one-shot messages.
//
// A handler queues a message with Add; the next request that passes the
// flash stage sees it in the view locals and the queue is emptied, so every
// message is displayed once.
//
//	flash.Add(session.MustFromContext(r.Context()), "Saved")
//	http.Redirect(w, r, "/", http.StatusFound)
package flash
