// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/inspect"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/report"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/logger"
)

func sampleRecords() []inspect.Record {
	return []inspect.Record{
		{
			Domain:   "example.com",
			IssuedTo: "example.com",
			Issuer:   "Example CA",
			Expiry:   time.Date(2026, time.June, 15, 8, 30, 0, 0, time.UTC),
			HasCert:  true,
		},
		{
			Domain:   "near.test",
			IssuedTo: "near.test",
			Issuer:   "Example CA",
			Expiry:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			HasCert:  true,
			Problems: []string{inspect.ProblemNearRenewal},
		},
		{
			Domain:   "absent.test",
			IssuedTo: inspect.Absent,
			Issuer:   inspect.Absent,
			Problems: []string{inspect.ProblemNoCertificate},
		},
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	r := report.New(&buf)

	require.NoError(t, r.Table(sampleRecords()), "Table() error")

	out := buf.String()
	assert.Contains(t, out, "example.com", "expected all domains in the default table")
	assert.Contains(t, out, "near.test")
	assert.Contains(t, out, "absent.test")
	assert.Contains(t, out, "2026-06-15 08:30:00 UTC", "expected formatted expiry")
	assert.Contains(t, out, inspect.ProblemNoCertificate)

	// Rows keep input order.
	assert.Less(t, strings.Index(out, "example.com"), strings.Index(out, "near.test"))
	assert.Less(t, strings.Index(out, "near.test"), strings.Index(out, "absent.test"))
}

func TestProblemsTable(t *testing.T) {
	t.Run("Flagged Rows Only", func(t *testing.T) {
		var buf bytes.Buffer
		r := report.New(&buf)

		require.NoError(t, r.ProblemsTable(sampleRecords()), "ProblemsTable() error")

		out := buf.String()
		assert.NotContains(t, out, "example.com", "clean domains must not appear")
		assert.Contains(t, out, "near.test")
		assert.Contains(t, out, "absent.test")
	})

	t.Run("Silent When Clean", func(t *testing.T) {
		var buf bytes.Buffer
		r := report.New(&buf)

		records := []inspect.Record{
			{Domain: "example.com", IssuedTo: "example.com", Issuer: "Example CA", HasCert: true},
		}

		require.NoError(t, r.ProblemsTable(records), "ProblemsTable() error")

		assert.Empty(t, buf.String(), "no output at all expected, header included")
	})
}

func TestRenewalList(t *testing.T) {
	t.Run("Near Renewal Domains In Order", func(t *testing.T) {
		var buf bytes.Buffer
		r := report.New(&buf)

		records := []inspect.Record{
			{Domain: "b.test", HasCert: true, Problems: []string{inspect.ProblemNearRenewal}},
			{Domain: "clean.test", HasCert: true},
			{Domain: "a.test", HasCert: true, Problems: []string{inspect.ProblemNameMismatch, inspect.ProblemNearRenewal}},
		}

		require.NoError(t, r.RenewalList(records), "RenewalList() error")

		assert.Equal(t, "b.test\na.test\n", buf.String(), "expected only flagged domains, input order")
	})

	t.Run("Empty", func(t *testing.T) {
		var buf bytes.Buffer
		r := report.New(&buf)

		require.NoError(t, r.RenewalList(nil), "RenewalList() error")
		assert.Empty(t, buf.String())
	})
}

func TestRunCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a shell script fixture")
	}

	dir := t.TempDir()
	outFile := filepath.Join(dir, "invocations.txt")
	script := filepath.Join(dir, "renew.sh")
	require.NoError(t, os.WriteFile(script,
		[]byte("#!/bin/sh\necho \"$1\" >> "+outFile+"\n"), 0755),
		"failed to write fixture script")

	var buf bytes.Buffer
	r := report.New(&buf)

	records := []inspect.Record{
		{Domain: "b.test", HasCert: true, Problems: []string{inspect.ProblemNearRenewal}},
		{Domain: "clean.test", HasCert: true},
		{Domain: "a.test", HasCert: true, Problems: []string{inspect.ProblemNearRenewal}},
	}

	r.RunCommand(t.Context(), script, records, logger.NewDiscardLogger())

	content, err := os.ReadFile(outFile)
	require.NoError(t, err, "expected the command to have run")

	assert.Equal(t, "b.test\na.test\n", string(content), "one invocation per near-renewal domain, input order")
}

func TestRunCommandFailure(t *testing.T) {
	var buf bytes.Buffer
	r := report.New(&buf)

	records := []inspect.Record{
		{Domain: "a.test", HasCert: true, Problems: []string{inspect.ProblemNearRenewal}},
		{Domain: "b.test", HasCert: true, Problems: []string{inspect.ProblemNearRenewal}},
	}

	var logBuf bytes.Buffer
	log := logger.NewCLILogger()
	log.SetOutput(&logBuf)

	// A command that cannot be executed must be logged per domain, not panic.
	r.RunCommand(t.Context(), filepath.Join(t.TempDir(), "missing-tool"), records, log)

	assert.Contains(t, logBuf.String(), "a.test")
	assert.Contains(t, logBuf.String(), "b.test")
}
