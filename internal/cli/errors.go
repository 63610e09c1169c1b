package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/clihelp/pkg/errors"
	"github.com/pterm/pterm"
)

// PrintError reports err on w, with its code and details when it has them
func PrintError(w io.Writer, err error) {
	msg := err.Error()
	if code := errors.GetErrorCode(err); code != "" && code != errors.ErrUnknown {
		msg = fmt.Sprintf("%s (%s)", msg, code)
	}
	pterm.Error.WithWriter(w).Println(msg)

	details := errors.GetErrorDetails(err)
	if len(details) == 0 {
		return
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %v\n", k, details[k])
	}
	fmt.Fprint(w, pterm.FgGray.Sprint(b.String()))
}
