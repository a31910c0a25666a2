package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/etimsclient/internal/client/api"
	"github.com/dmitrijs2005/etimsclient/internal/client/models"
)

// formatError renders a command failure. Field errors reported by the
// server are listed one per line below the message.
func formatError(err error) string {
	var ee *api.EnvelopeError
	if !errors.As(err, &ee) {
		return "Error: " + err.Error()
	}

	var b strings.Builder
	b.WriteString("Error: " + ee.Message)

	fields := make([]string, 0, len(ee.Errors))
	for f := range ee.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(&b, "\n  %s: %s", f, strings.Join(ee.Errors[f], "; "))
	}
	if errors.Is(err, api.ErrUnauthorized) && ee.Status == 401 {
		b.WriteString("\nYour session has ended, please login again.")
	}
	return b.String()
}

// table writes rows aligned in columns.
func table(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

func fmtTime(t models.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
