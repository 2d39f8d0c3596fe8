package static

import "errors"

// ErrReadFailed wraps file system failures other than a missing file.
var ErrReadFailed = errors.New("static: failed to read file")
