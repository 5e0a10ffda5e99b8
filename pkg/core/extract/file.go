package extract

import (
	"os"
	"path/filepath"
	"strings"

	"edinet_ingest/pkg/core/archive"
	"edinet_ingest/pkg/core/inline"

	"github.com/cockroachdb/errors"
)

// Source names where the statements of a Result came from.
type Source string

const (
	SourceInstance Source = "instance"
	SourceInline   Source = "inline"
)

// ExtractArchive reads a downloaded EDINET archive. The XBRL instance is
// preferred; archives without one fall back to their inline-tagged HTML.
func (e *Extractor) ExtractArchive(path string) (*Result, Source, error) {
	r, err := archive.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer r.Close()

	instance, err := r.Instance()
	switch {
	case err == nil:
		res, err := e.Extract(instance)
		if err != nil {
			return nil, "", errors.Wrapf(err, "extract %s", path)
		}
		return res, SourceInstance, nil
	case !errors.Is(err, archive.ErrNoInstance):
		return nil, "", err
	}

	members, err := r.InlineDocuments()
	if err != nil {
		return nil, "", err
	}
	if len(members) == 0 {
		return nil, "", errors.Wrapf(archive.ErrNoInstance, "%s", path)
	}
	res, err := e.extractInline(memberTexts(members)...)
	if err != nil {
		return nil, "", errors.Wrapf(err, "extract %s", path)
	}
	return res, SourceInline, nil
}

// ExtractFile picks the reader by extension: .zip archives, .htm/.html
// inline documents, anything else as an XBRL instance.
func (e *Extractor) ExtractFile(path string) (*Result, Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return e.ExtractArchive(path)
	case ".htm", ".html", ".xhtml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", errors.Wrapf(err, "read %s", path)
		}
		res, err := e.extractInline(string(data))
		if err != nil {
			return nil, "", err
		}
		return res, SourceInline, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, "", errors.Wrapf(err, "open %s", path)
		}
		defer f.Close()
		res, err := e.ExtractReader(f)
		if err != nil {
			return nil, "", err
		}
		return res, SourceInstance, nil
	}
}

func (e *Extractor) extractInline(docs ...string) (*Result, error) {
	doc, err := inline.Parse(docs...)
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(doc), nil
}

func memberTexts(members []archive.Member) []string {
	texts := make([]string, len(members))
	for i, m := range members {
		texts[i] = m.Text
	}
	return texts
}
