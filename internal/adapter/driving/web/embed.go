// Package web serves the browser client: a static page that talks to the
// REST API with fetch.
package web

import "embed"

// StaticFS holds the embedded browser client (index.html, app.js, style.css).
//
//go:embed static/*
var StaticFS embed.FS
