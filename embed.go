package portfolio

import "embed"

// EmbeddedAssets contains the client assets served under /public/:
// site.js and site.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
