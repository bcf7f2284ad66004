package ui

import "embed"

// Templates embeds the server-rendered HTML pages. Each page extends
// layout.html by defining a "content" block.
//
//go:embed templates
var Templates embed.FS
