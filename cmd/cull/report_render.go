package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"cull/internal/report"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
)

// renderReport writes the verbose run report: a header, the per-file
// outcome table, and the summary line.
func renderReport(w io.Writer, rep *report.Report) {
	colorize := shouldColorize(w)

	title := rep.Title
	if rep.DryRun {
		title += " (dry run)"
	}
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, renderStatusLine("Action", statusInfo, rep.Action, colorize))
	fmt.Fprintln(w, renderStatusLine("Source", statusInfo, rep.Source, colorize))
	if rep.Dest != "" {
		fmt.Fprintln(w, renderStatusLine("Destination", statusInfo, rep.Dest, colorize))
	}
	if rep.ManifestPath != "" {
		fmt.Fprintln(w, renderStatusLine("Manifest", statusInfo, rep.ManifestPath, colorize))
	}

	if len(rep.Rows) == 0 {
		fmt.Fprintln(w, statusIndent+"No files selected.")
		return
	}

	fmt.Fprintln(w, renderOutcomeTable(rep))
	fmt.Fprintln(w, renderSummary(rep, colorize))
}

func renderOutcomeTable(rep *report.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Class", "Rating", "Inherited", "Outcome", "Detail"})

	for _, row := range rep.Rows {
		detail := row.Outcome.Reason
		if row.Outcome.Warning != "" {
			if detail != "" {
				detail += "; "
			}
			detail += "warning: " + row.Outcome.Warning
		}
		tw.AppendRow(table.Row{
			row.Outcome.Candidate.Name,
			row.Outcome.Candidate.Class.String(),
			row.RatingLabel(),
			yesNo(row.Inherited),
			row.Outcome.Status.String(),
			detail,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func renderSummary(rep *report.Report, colorize bool) string {
	counts := rep.Counts
	kind := statusOK
	switch {
	case counts.Failed > 0:
		kind = statusError
	case counts.Warnings > 0 || counts.Skipped > 0:
		kind = statusWarn
	}
	message := fmt.Sprintf("%d selected, %d succeeded, %d skipped, %d failed",
		counts.Selected, counts.Succeeded, counts.Skipped, counts.Failed)
	if counts.Warnings > 0 {
		message += fmt.Sprintf(", %d warning(s)", counts.Warnings)
	}
	message += fmt.Sprintf(" in %s", rep.Duration().Round(time.Millisecond))
	return renderStatusLine("Result", kind, message, colorize)
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
