package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"edinet_ingest/pkg/core/archive"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inlineDoc = `<html xmlns:ix="http://www.xbrl.org/2013/inlineXBRL" xmlns:jppfs_cor="http://disclosure.edinet-fsa.go.jp/taxonomy/jppfs/2014-03-31/jppfs_cor">
<body><p><ix:nonFraction name="jppfs_cor:NetSales" contextRef="CurrentYTDDuration" unitRef="JPY" decimals="-6" scale="6" format="ixt:numdotdecimal">1,500</ix:nonFraction></p></body></html>`

func writeZip(t *testing.T, members map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "S100TEST_xbrl.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, body := range members {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestExtractArchive_PrefersInstance(t *testing.T) {
	path := writeZip(t, map[string]string{
		"XBRL/PublicDoc/jpcrp040300-q1r-001_E00001-000_2015-03-31_01_2015-05-01.xbrl": quarterly,
		"XBRL/PublicDoc/0101010_honbun_jpcrp040300-q1r-001_ixbrl.htm":                   inlineDoc,
	})

	res, src, err := New().ExtractArchive(path)
	require.NoError(t, err)
	assert.Equal(t, SourceInstance, src)
	assert.Equal(t, 1e9, *res.IncomeStatement.NetSales)
}

func TestExtractArchive_InlineFallback(t *testing.T) {
	path := writeZip(t, map[string]string{
		"XBRL/PublicDoc/0101010_honbun_jpcrp040300-q1r-001_ixbrl.htm": inlineDoc,
	})

	res, src, err := New().ExtractArchive(path)
	require.NoError(t, err)
	assert.Equal(t, SourceInline, src)
	assert.Equal(t, 1.5e9, *res.IncomeStatement.NetSales)
}

func TestExtractArchive_NothingTagged(t *testing.T) {
	path := writeZip(t, map[string]string{"XBRL/PublicDoc/manifest_PublicDoc.xml": "<manifest/>"})

	_, _, err := New().ExtractArchive(path)
	assert.True(t, errors.Is(err, archive.ErrNoInstance))
}

func TestExtractArchive_BrokenInstance(t *testing.T) {
	path := writeZip(t, map[string]string{"XBRL/PublicDoc/x.xbrl": "<xbrli:xbrl><a></xbrli:xbrl>"})

	_, _, err := New().ExtractArchive(path)
	assert.Error(t, err)
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	instance := filepath.Join(dir, "report.xbrl")
	require.NoError(t, os.WriteFile(instance, []byte(quarterly), 0o644))
	htm := filepath.Join(dir, "honbun_ixbrl.htm")
	require.NoError(t, os.WriteFile(htm, []byte(inlineDoc), 0o644))

	e := New()

	res, src, err := e.ExtractFile(instance)
	require.NoError(t, err)
	assert.Equal(t, SourceInstance, src)
	assert.Equal(t, 5e9, *res.BalanceSheet.Assets.TotalAssets)

	res, src, err = e.ExtractFile(htm)
	require.NoError(t, err)
	assert.Equal(t, SourceInline, src)
	assert.Equal(t, 1.5e9, *res.IncomeStatement.NetSales)

	_, _, err = e.ExtractFile(filepath.Join(dir, "missing.xbrl"))
	assert.Error(t, err)
}
