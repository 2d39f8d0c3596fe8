// Package routes holds the application's HTTP routes. The router runs as one
// stage of the request pipeline; requests it does not match continue to the
// not-found stage.
package routes
