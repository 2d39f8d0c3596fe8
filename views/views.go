package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/homedata/pkg/view"
)

// Names of the registered views.
const (
	Home        = "home"
	NotFound    = "404"
	ServerError = "5xx"
)

// New returns a renderer with the main layout and the application views.
func New(opts ...view.Option) *view.Renderer {
	base := []view.Option{
		view.WithLayout(view.DefaultLayout, MainLayout),
		view.WithView(Home, HomeView),
		view.WithView(NotFound, NotFoundView),
		view.WithView(ServerError, ServerErrorView),
	}
	return view.NewRenderer(append(base, opts...)...)
}

// MainLayout wraps every page. Pending flash messages are listed above the
// page body.
func MainLayout(d view.Data, body templ.Component) templ.Component {
	return component(func(p *page) {
		title := d.String("title")
		if title == "" {
			title = "Home data"
		}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(title)
		p.raw(`</title><link rel="stylesheet" href="/css/style.css">`)
		p.render(view.Yield("head"))
		p.raw(`</head><body>`)
		p.render(view.If(d.Value("hasMessages"), messages(d.Strings("messages")), nil))
		p.raw(`<main>`)
		p.render(body)
		p.raw(`</main>`)
		p.render(view.Yield("scripts"))
		p.raw(`</body></html>`)
	})
}

func messages(msgs []string) templ.Component {
	return component(func(p *page) {
		p.raw(`<ul class="messages">`)
		for _, m := range msgs {
			p.raw(`<li>`)
			p.text(m)
			p.raw(`</li>`)
		}
		p.raw(`</ul>`)
	})
}

// HomeView shows the message form. "errors" lists validation failures from
// the previous submission.
func HomeView(d view.Data) templ.Component {
	return component(func(p *page) {
		p.render(view.Section("head", templ.Raw(`<meta name="description" content="Home data">`)))
		p.raw(`<h1>Home data</h1>`)
		p.render(view.If(d.Value("errors"), fieldErrors(d.Strings("errors")), nil))
		p.raw(`<form method="post" action="/messages">`)
		p.raw(`<label for="text">Message</label>`)
		p.raw(`<input id="text" name="text" type="text" value="`)
		p.text(d.String("text"))
		p.raw(`"><button type="submit">Save</button></form>`)
	})
}

func fieldErrors(errs []string) templ.Component {
	return component(func(p *page) {
		p.raw(`<ul class="errors">`)
		for _, e := range errs {
			p.raw(`<li>`)
			p.text(e)
			p.raw(`</li>`)
		}
		p.raw(`</ul>`)
	})
}

// NotFoundView names the requested URL.
func NotFoundView(d view.Data) templ.Component {
	return component(func(p *page) {
		p.raw(`<h1>Not found</h1><p>Sorry, we cannot find <code>`)
		p.text(d.String("url"))
		p.raw(`</code>.</p>`)
	})
}

// ServerErrorView is the generic error page. It never shows error details.
func ServerErrorView(view.Data) templ.Component {
	return component(func(p *page) {
		p.raw(`<h1>Internal server error</h1><p>Something went wrong. Please try again later.</p>`)
	})
}
