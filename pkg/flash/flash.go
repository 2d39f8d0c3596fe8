package flash

import (
	"net/http"

	"github.com/dmitrymomot/homedata/pkg/pipeline"
	"github.com/dmitrymomot/homedata/pkg/session"
	"github.com/dmitrymomot/homedata/pkg/view"
)

// Key is the session field holding pending messages.
const Key = "messages"

// Add appends message to the session's pending messages, creating the list
// when absent.
func Add(sess *session.Session, message string) {
	msgs, _ := sess.GetStrings(Key)
	sess.Set(Key, append(msgs, message))
}

// Drain returns the pending messages and resets the list. The result is
// never nil. Draining an empty or absent list leaves the session unmodified.
func Drain(sess *session.Session) (messages []string, hasMessages bool) {
	msgs, ok := sess.GetStrings(Key)
	if !ok || len(msgs) == 0 {
		return []string{}, false
	}
	sess.Set(Key, []string{})
	return msgs, true
}

// Stage drains the messages once per request and exposes them to views as
// "messages" and "hasMessages". The session stage must run first.
func Stage() pipeline.Stage {
	return pipeline.Func("flash", func(w http.ResponseWriter, r *http.Request, next pipeline.Next) error {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			return session.ErrNoSession
		}

		msgs, has := Drain(sess)
		locals := view.LocalsFrom(r.Context())
		locals.Set("messages", msgs)
		locals.Set("hasMessages", has)

		return next(w, r.WithContext(view.WithLocals(r.Context(), locals)))
	})
}
