// Package reports renders tabular reports into pluggable output formats.
//
// # Architecture
//
// The package is built around a format registry:
//
//	Report → Registry.Dispatch(key) → Handler.Generate → output
//
// Each output format implements the Handler interface and is bound to a
// key in the Registry at wiring time. Dispatch only looks the key up and
// delegates; all format-specific rendering lives inside the handler.
//
// # Adding a New Output Format
//
// To add support for a new format (e.g., HTML):
//
//  1. Create a new file: html.go
//
//  2. Implement the Handler interface:
//
//     type HTMLHandler struct{}
//
//     func (h *HTMLHandler) Generate(report Report) (string, error) { ... }
//
//  3. Register it during wiring:
//
//     registry.Register("html", NewHTMLHandler())
//
// No existing code changes: the registry and the other handlers are
// untouched by a new format.
package reports
