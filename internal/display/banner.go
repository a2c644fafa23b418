// Package display holds terminal presentation helpers: the startup banner
// and human-readable sizes for the run summary.
package display

import (
	"fmt"
	"io"

	"github.com/backmassage/roisplit/internal/term"
)

const banner = `           _           _ _ _
 _ __ ___ (_)___ _ __ | (_) |_
| '__/ _ \| / __| '_ \| | | __|
| | | (_) | \__ \ |_) | | | |_
|_|  \___/|_|___/ .__/|_|_|\__|
                |_|
`

// PrintBanner writes the ASCII art banner to w, in magenta when colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Paint(term.Magenta, banner))
}
