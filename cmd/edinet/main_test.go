package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const instance = `<?xml version="1.0" encoding="UTF-8"?>
<xbrli:xbrl xmlns:xbrli="http://www.xbrl.org/2003/instance" xmlns:jppfs_cor="http://disclosure.edinet-fsa.go.jp/taxonomy/jppfs/2014-03-31/jppfs_cor">
  <xbrli:context id="CurrentYTDDuration"><xbrli:period><xbrli:startDate>2015-01-01</xbrli:startDate><xbrli:endDate>2015-03-31</xbrli:endDate></xbrli:period></xbrli:context>
  <jppfs_cor:NetSales contextRef="CurrentYTDDuration" unitRef="JPY" decimals="-6">1000000</jppfs_cor:NetSales>
  <jppfs_cor:CostOfSales contextRef="CurrentYTDDuration" unitRef="JPY" decimals="-6">400000</jppfs_cor:CostOfSales>
  <jppfs_cor:GrossProfit contextRef="CurrentYTDDuration" unitRef="JPY" decimals="-6">500000</jppfs_cor:GrossProfit>
</xbrli:xbrl>`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		extractFormat, extractStats = "markdown", false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeInstance(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.xbrl")
	require.NoError(t, os.WriteFile(path, []byte(instance), 0o644))
	return path
}

func TestExtractCommand_Markdown(t *testing.T) {
	out, err := runCLI(t, "extract", writeInstance(t), "--stats")
	require.NoError(t, err)

	assert.Contains(t, out, "| Net sales | 1,000,000 |")
	assert.Contains(t, out, "| Operating income | - |")
	assert.Contains(t, out, "Source: instance")
	assert.Contains(t, out, "## Cross-check mismatches")
	assert.Contains(t, out, "gross_profit")
	assert.Contains(t, out, "| Contexts | 1 |")
}

func TestExtractCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "extract", writeInstance(t), "--format", "json")
	require.NoError(t, err)

	var payload struct {
		Report struct {
			IncomeStatement map[string]float64 `json:"income_statement"`
		} `json:"report"`
		Source string `json:"source"`
		Checks []struct {
			Name       string `json:"name"`
			IsBalanced bool   `json:"is_balanced"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))

	assert.Equal(t, "instance", payload.Source)
	assert.Equal(t, map[string]float64{"net_sales": 1e6, "cost_of_sales": 4e5, "gross_profit": 5e5}, payload.Report.IncomeStatement)
	require.Len(t, payload.Checks, 1)
	assert.False(t, payload.Checks[0].IsBalanced)
}

func TestExtractCommand_HTML(t *testing.T) {
	out, err := runCLI(t, "extract", writeInstance(t), "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Net sales</td>")
}

func TestExtractCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "extract", writeInstance(t), "--format", "yaml")
	assert.Error(t, err)

	_, err = runCLI(t, "extract", filepath.Join(t.TempDir(), "missing.xbrl"))
	assert.Error(t, err)

	_, err = runCLI(t, "extract")
	assert.Error(t, err)
}
