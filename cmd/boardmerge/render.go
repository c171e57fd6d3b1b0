// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/boardmerge/boardmerge/internal/issue"
	"github.com/boardmerge/boardmerge/internal/merge"
)

const (
	progressLabel = "Validating the JSON files"
	progressWidth = 40
)

// progressObserver draws a static progress bar on a terminal while files
// are extracted. It renders nothing when the output is not a terminal.
type progressObserver struct {
	w       io.Writer
	enabled bool
	bar     progress.Model
	drawn   bool
}

var _ merge.Observer = (*progressObserver)(nil)

func newProgressObserver(w io.Writer, enabled bool) *progressObserver {
	return &progressObserver{
		w:       w,
		enabled: enabled,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth)),
	}
}

// Observe implements merge.Observer.
func (p *progressObserver) Observe(e merge.Event) {
	if !p.enabled {
		return
	}
	switch ev := e.(type) {
	case merge.EventFileProcessed:
		pct := float64(ev.Index+1) / float64(ev.Total)
		fmt.Fprintf(p.w, "\r%s %s %d/%d", progressLabel, p.bar.ViewAs(pct), ev.Index+1, ev.Total)
		p.drawn = true
	case merge.EventSortComplete:
		p.finish()
	}
}

// finish terminates the progress line so later output starts on a fresh line.
func (p *progressObserver) finish() {
	if p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}

// renderDiagnostics lists skipped files on w. Files without boards are only
// listed in verbose mode.
func renderDiagnostics(w io.Writer, diags []merge.Diagnostic, verbose bool) {
	var shown []merge.Diagnostic
	for _, d := range diags {
		if d.IsSkip() || verbose {
			shown = append(shown, d)
		}
	}
	if len(shown) == 0 {
		return
	}

	fmt.Fprintln(w)
	for i, d := range shown {
		tag := codeStyle.Render("[" + d.Code + "]")
		if !d.IsSkip() {
			tag = VerboseStyle.Render("[" + d.Code + "]")
		}
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, tag, PathStyle.Render(d.Path))
		fmt.Fprintf(w, "     %s\n", d.Message)
	}
}

// renderSummary prints the record and file counts of a finished run.
func renderSummary(w io.Writer, summary merge.Summary) {
	fmt.Fprintf(w, "%d boards found from %d JSON files.\n", summary.RecordCount, summary.ContributingFileCount)
	if summary.SkippedFileCount > 0 {
		fmt.Fprintf(w, "%s %d files skipped\n", warningIcon, summary.SkippedFileCount)
	}
}

// renderSaved announces where the merged document was written.
func renderSaved(w io.Writer, path string) {
	fmt.Fprintf(w, "\n%s The output is saved as %s in the %s folder\n",
		successIcon,
		SuccessStyle.Bold(true).Render("'"+filepath.Base(path)+"'"),
		SuccessStyle.Bold(true).Render("'"+filepath.Dir(path)+"'"))
}

// actionableMergeError attaches an operation, suggestions and a catalog
// issue to a fatal merge error.
func actionableMergeError(err error, root, outputDir string) *issue.ActionableError {
	ctx := issue.NewErrorContext().WithOperation("merge boards").Wrap(err)

	kind, ok := merge.KindOf(err)
	if !ok {
		return ctx.Build()
	}

	switch kind {
	case merge.KindInvalidDirectory:
		ctx.WithResource(root).
			WithIssue(issue.InvalidDirectoryId).
			WithSuggestion("Please choose a valid folder with --file-path")
	case merge.KindMissingField:
		var mf *merge.MissingFieldError
		if errors.As(err, &mf) {
			ctx.WithResource(mf.Source)
		}
		ctx.WithIssue(issue.MissingFieldId).
			WithSuggestion(`Add the missing field, or move the file out of the merge root`)
	case merge.KindWrite:
		ctx.WithResource(outputDir).
			WithIssue(issue.WriteFailedId).
			WithSuggestion("Use --create-output-dir to create the output folder").
			WithSuggestion("Choose a writable folder with --output-dir")
	default:
	}
	return ctx.Build()
}

// renderFatal prints a fatal error. On a terminal the matching catalog issue
// is rendered with glamour after the one-line summary.
func renderFatal(w io.Writer, ae *issue.ActionableError, verbose, tty bool, style string) {
	fmt.Fprintf(w, "%s %s\n", errorIcon, ErrorStyle.Render(kindLabel(ae)))
	fmt.Fprintln(w, ae.Format(verbose))

	if !tty || ae.Issue == 0 {
		return
	}
	if catalog := issue.Get(ae.Issue); catalog != nil {
		if rendered, err := catalog.Render(style); err == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// kindLabel names the failure kind for the header line.
func kindLabel(ae *issue.ActionableError) string {
	if kind, ok := merge.KindOf(ae); ok {
		return kind.String()
	}
	return "Error"
}
