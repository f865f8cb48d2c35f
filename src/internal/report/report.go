// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/inspect"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/logger"
)

// tableHeader is the column set of the default and problems tables.
var tableHeader = []string{"Domain", "Issued To", "Valid Until", "Issued By", "Possible Issues"}

// Renderer writes inspection results in one of the mutually exclusive output
// modes. Rows always appear in input domain order.
type Renderer struct {
	out io.Writer
}

// New creates a Renderer writing to out.
func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Table renders the full aligned table of all records.
func (r *Renderer) Table(records []inspect.Record) error {
	return r.renderTable(records)
}

// ProblemsTable renders the table restricted to records with problems.
// It prints nothing at all, header included, when no record has a flag.
func (r *Renderer) ProblemsTable(records []inspect.Record) error {
	var flagged []inspect.Record
	for _, record := range records {
		if record.HasProblems() {
			flagged = append(flagged, record)
		}
	}

	if len(flagged) == 0 {
		return nil
	}

	return r.renderTable(flagged)
}

// RenewalList prints the domains flagged near renewal, one per line,
// suitable for piping into other tools.
func (r *Renderer) RenewalList(records []inspect.Record) error {
	for _, record := range records {
		if !record.NeedsRenewal() {
			continue
		}
		if _, err := fmt.Fprintln(r.out, record.Domain); err != nil {
			return fmt.Errorf("report: failed to write renewal list: %w", err)
		}
	}

	return nil
}

// renderTable writes the records as a borderless whitespace-aligned table.
func (r *Renderer) renderTable(records []inspect.Record) error {
	table := tablewriter.NewTable(r.out,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenRows: tw.Off, BetweenColumns: tw.Off},
				Lines:      tw.Lines{ShowTop: tw.Off, ShowBottom: tw.Off, ShowHeaderLine: tw.Off, ShowFooterLine: tw.Off},
			},
		})),
	)

	table.Header(tableHeader)

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Domain,
			record.IssuedTo,
			record.ExpiryString(),
			record.Issuer,
			strings.Join(record.Problems, ", "),
		})
	}

	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("report: failed to add rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("report: failed to render table: %w", err)
	}

	return nil
}

// RunCommand invokes command with the domain name as its sole argument for
// every record flagged near renewal, in input order. The command inherits
// the renderer's output writer; a failing invocation is logged and does not
// stop the iteration.
func (r *Renderer) RunCommand(ctx context.Context, command string, records []inspect.Record, log logger.Logger) {
	for _, record := range records {
		if !record.NeedsRenewal() {
			continue
		}

		cmd := exec.CommandContext(ctx, command, record.Domain)
		cmd.Stdout = r.out
		cmd.Stderr = r.out
		if err := cmd.Run(); err != nil {
			log.Printf("%s %s: %v", command, record.Domain, err)
		}
	}
}
