// Package pipeline composes HTTP request processing from an explicit ordered
// list of stages, one designated error stage and one terminal not-found
// handler.
//
// A Stage receives the request together with a Next function. It either
// writes a response and returns without calling Next (short-circuit), or calls
// Next to hand the request to the following stage. Any error returned by a
// stage, or a panic raised while processing, travels back up the chain and is
// delivered to the error stage exactly once. Stages never have to catch errors
// produced by later stages.
//
// # Architecture
//
//	request ─► stage 1 ─► stage 2 ─► ... ─► stage N ─► not found
//	               ▲                             │
//	               └──────── error ◄─────────────┘
//	                           │
//	                           ▼
//	                      error stage
//
// Regular net/http middleware can join a pipeline through Middleware, and a
// router (or any http.Handler) through Handler. Handlers running inside such
// a stage report errors with Raise and hand unmatched requests back to the
// pipeline with Pass.
//
// # Usage
//
//	p := pipeline.New(
//		pipeline.WithStages(
//			pipeline.Middleware("request_id", requestid.Middleware),
//			sessions.Stage(),
//			pipeline.Handler("routes", router),
//		),
//		pipeline.WithErrorStage(func(w http.ResponseWriter, r *http.Request, err error) {
//			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
//		}),
//		pipeline.WithNotFound(http.NotFoundHandler()),
//	)
//
//	router.NotFound(pipeline.Pass)
//
//	http.ListenAndServe(":3000", p)
//
// # Error Handling
//
// Panics are converted into *PanicError values carrying the recovered value
// and the stack trace. http.ErrAbortHandler is re-panicked so net/http can
// abort the connection. When a stage fails after the response has already
// been committed, the error is logged and the error stage is skipped.
package pipeline
