// Package views holds the application's layout and pages as templ components.
package views
