// Package archive reads the XBRL instance out of an EDINET download archive.
package archive

import (
	"archive/zip"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	publicDocDir   = "XBRL/PublicDoc/"
	instanceSuffix = ".xbrl"
	inlineSuffix   = "_ixbrl.htm"

	// maxMemberSize bounds a single decompressed member.
	maxMemberSize = 256 << 20
)

// ErrNoInstance is returned when an archive holds no .xbrl member.
var ErrNoInstance = errors.New("archive: no xbrl instance document")

// Reader provides access to the members of one archive.
type Reader struct {
	closer io.Closer
	files  []*zip.File
}

// Open opens an archive file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "archive: open %s", filename)
	}
	return &Reader{closer: zr, files: zr.File}, nil
}

// NewReader reads an archive from r.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "archive: read zip")
	}
	return &Reader{files: zr.File}, nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// Names lists the archive members in archive order.
func (r *Reader) Names() []string {
	names := make([]string, len(r.files))
	for i, f := range r.files {
		names[i] = f.Name
	}
	return names
}

// InstanceName returns the member Instance would read. Members under
// XBRL/PublicDoc/ win over .xbrl files elsewhere (audit documents live in
// XBRL/AuditDoc/).
func (r *Reader) InstanceName() (string, error) {
	f := r.instance()
	if f == nil {
		return "", ErrNoInstance
	}
	return f.Name, nil
}

// Instance returns the text of the instance document.
func (r *Reader) Instance() (string, error) {
	f := r.instance()
	if f == nil {
		return "", ErrNoInstance
	}
	return readMember(f)
}

func (r *Reader) instance() *zip.File {
	var fallback *zip.File
	for _, f := range r.files {
		if !strings.HasSuffix(f.Name, instanceSuffix) || f.FileInfo().IsDir() {
			continue
		}
		if strings.HasPrefix(f.Name, publicDocDir) {
			return f
		}
		if fallback == nil {
			fallback = f
		}
	}
	return fallback
}

// InlineDocuments returns the inline-tagged HTML members of XBRL/PublicDoc/
// in name order.
func (r *Reader) InlineDocuments() ([]Member, error) {
	var found []*zip.File
	for _, f := range r.files {
		if path.Dir(f.Name)+"/" == publicDocDir && strings.HasSuffix(f.Name, inlineSuffix) {
			found = append(found, f)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })

	out := make([]Member, 0, len(found))
	for _, f := range found {
		text, err := readMember(f)
		if err != nil {
			return nil, err
		}
		out = append(out, Member{Name: f.Name, Text: text})
	}
	return out, nil
}

// Member is a named archive member.
type Member struct {
	Name string
	Text string
}

func readMember(f *zip.File) (string, error) {
	if f.UncompressedSize64 > maxMemberSize {
		return "", errors.Newf("archive: member %s too large (%d bytes)", f.Name, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return "", errors.Wrapf(err, "archive: open member %s", f.Name)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxMemberSize+1))
	if err != nil {
		return "", errors.Wrapf(err, "archive: read member %s", f.Name)
	}
	if len(data) > maxMemberSize {
		return "", errors.Newf("archive: member %s too large", f.Name)
	}
	return string(data), nil
}
