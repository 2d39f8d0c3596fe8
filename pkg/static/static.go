package static

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrymomot/homedata/pkg/pipeline"
)

// IndexFile is served for directory requests.
const IndexFile = "index.html"

// Option configures a static stage.
type Option func(*config)

type config struct {
	cacheControl string
	index        string
}

// WithCacheControl sets the Cache-Control header on served files.
func WithCacheControl(v string) Option {
	return func(c *config) { c.cacheControl = v }
}

// WithIndex changes the file served for directories. An empty name disables
// directory requests.
func WithIndex(name string) Option {
	return func(c *config) { c.index = name }
}

// Stage serves GET and HEAD requests under prefix from fsys. Requests that
// do not resolve to a regular file pass to the next stage, as do paths with
// a segment starting with a dot.
func Stage(prefix string, fsys fs.FS, opts ...Option) pipeline.Stage {
	if fsys == nil {
		panic("static.Stage: nil file system")
	}
	cfg := config{index: IndexFile}
	for _, opt := range opts {
		opt(&cfg)
	}
	prefix = "/" + strings.Trim(prefix, "/")

	return pipeline.Func("static "+prefix, func(w http.ResponseWriter, r *http.Request, next pipeline.Next) error {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			return next(w, r)
		}
		name, ok := resolve(prefix, r.URL.Path)
		if !ok {
			return next(w, r)
		}

		served, err := serve(w, r, fsys, name, cfg)
		if err != nil {
			return err
		}
		if !served {
			return next(w, r)
		}
		return nil
	})
}

// resolve maps a URL path to a file name inside the root.
func resolve(prefix, urlPath string) (string, bool) {
	rel := urlPath
	if prefix != "/" {
		if urlPath != prefix && !strings.HasPrefix(urlPath, prefix+"/") {
			return "", false
		}
		rel = strings.TrimPrefix(urlPath, prefix)
	}
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return "", false
		}
	}
	name := strings.TrimPrefix(path.Clean("/"+rel), "/")
	if name == "" {
		name = "."
	}
	return name, fs.ValidPath(name)
}

func serve(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string, cfg config) (bool, error) {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return false, ignoreMissing(err)
	}
	if info.IsDir() {
		if cfg.index == "" {
			return false, nil
		}
		name = path.Join(name, cfg.index)
		if info, err = fs.Stat(fsys, name); err != nil {
			return false, ignoreMissing(err)
		}
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}

	f, err := fsys.Open(name)
	if err != nil {
		return false, ignoreMissing(err)
	}
	defer f.Close()

	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			return false, errors.Join(ErrReadFailed, err)
		}
		content = bytes.NewReader(data)
	}

	if cfg.cacheControl != "" {
		w.Header().Set("Cache-Control", cfg.cacheControl)
	}
	http.ServeContent(w, r, path.Base(name), info.ModTime(), content)
	return true, nil
}

func ignoreMissing(err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return nil
	}
	return errors.Join(ErrReadFailed, err)
}
