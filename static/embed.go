package static

import "embed"

// FS embeds the stylesheet into the binary
// This allows the server to run standalone without external static files
//
//go:embed css robots.txt
var FS embed.FS
