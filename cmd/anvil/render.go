// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/devnode/anvil/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
)

// issueStyle lets glamour choose between dark, light and notty rendering.
const issueStyle = "auto"

// renderError is the fang error handler. Usage errors are followed by the
// catalog entry for their kind; any other error is printed as reported.
func (a *App) renderError(w io.Writer, _ fang.Styles, err error) {
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		if usageErr.ExitCode() == 0 {
			_, _ = fmt.Fprintln(w, usageErr.Error())
			return
		}
		_, _ = fmt.Fprintln(w, ErrorStyle.Render("error:")+" "+usageErr.Error())
		_, _ = fmt.Fprintln(w, SubtitleStyle.Render("Run 'anvil --help' for usage."))
		if id, ok := usageErr.hint(); ok {
			a.printIssue(w, id)
		}
		return
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		_, _ = fmt.Fprintln(w, ErrorStyle.Render("error:")+" "+ae.Format(a.Logger.GetLevel() <= log.DebugLevel))
		return
	}

	_, _ = fmt.Fprintln(w, ErrorStyle.Render("error:")+" "+err.Error())
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		a.printIssue(w, issue.NodeRunFailedId)
	}
}

// printIssue renders a catalog entry. Rendering failures are dropped since
// the error itself has already been printed.
func (a *App) printIssue(w io.Writer, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	out, err := entry.Render(issueStyle)
	if err != nil {
		a.Logger.Debug("failed to render issue", "id", id, "err", err)
		return
	}
	_, _ = fmt.Fprint(w, out)
}
