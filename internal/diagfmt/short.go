package diagfmt

import (
	"fmt"
	"io"

	"jsvet/internal/diag"
	"jsvet/internal/source"
)

// Short writes one line per diagnostic: path:line:col: severity: message [code].
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) error {
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
			formatPath(fs, d.Primary.File, mode), start.Line, start.Col,
			d.Severity.Label(), d.Message, d.Code); err != nil {
			return err
		}
	}
	return nil
}
