// Package view renders named templ views inside layouts.
//
// Views and layouts are registered on a Renderer by name. Each render merges
// the request Locals (set by earlier pipeline stages, for example the flash
// messages) with per-render data. The whole page is rendered into a buffer
// before anything is written, so a failing view never leaves a partial
// response behind.
//
// # Usage
//
//	r := view.NewRenderer(
//		view.WithLayout("main", views.Main),
//		view.WithView("home", views.Home),
//	)
//	err := r.Render(w, req, http.StatusOK, "home", map[string]any{"title": "Home"})
//
// # Helpers
//
// Truthy and If evaluate view conditions: empty slices and maps are true.
// Section captures content in a view for the layout to place with Yield.
package view
