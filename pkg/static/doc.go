// Package static serves files from an fs.FS as a pipeline stage.
//
// Several roots can be mounted one after another; the first root holding a
// matching file answers and the rest of the pipeline is skipped. A request
// that matches nothing continues down the chain, so static roots never
// produce 404s themselves.
//
// # Usage
//
//	pipeline.WithStages(
//		static.Stage("/", os.DirFS("public")),
//		static.Stage("/vendors", os.DirFS("vendors")),
//		...
//	)
//
// Directories serve index.html. Path segments starting with a dot are never
// served. Conditional and range requests are handled by http.ServeContent.
//
// # Error Handling
//
// A missing file is not an error. Other file system failures are returned
// wrapped in ErrReadFailed and reach the pipeline's error stage.
package static
