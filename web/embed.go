package web

import "embed"

// FS contains the static assets served under /static.
//
//go:embed static/*
var FS embed.FS

// Content holds the markdown pages rendered at startup.
//
//go:embed content/*.md
var Content embed.FS
