package archive

import (
	_ "crypto/sha256" // registers the canonical digest algorithm
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/agentstation/saveback/pkg/errors"
)

// Info describes one entry of the archive catalog.
type Info struct {
	Index    int           `json:"index" yaml:"index"`
	Name     string        `json:"name" yaml:"name"`
	Size     int64         `json:"size" yaml:"size"`
	Modified time.Time     `json:"modified" yaml:"modified"`
	Created  *time.Time    `json:"created,omitempty" yaml:"created,omitempty"`
	Comment  string        `json:"comment,omitempty" yaml:"comment,omitempty"`
	Digest   digest.Digest `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// Describe returns the catalog with file metadata. Created and Comment are
// filled for names that follow the archive naming convention. When
// withDigests is set every archive is read to compute its sha256 digest.
func (m *Manager) Describe(withDigests bool) ([]Info, error) {
	names, err := m.ListArchives()
	if err != nil {
		return nil, err
	}

	loc := m.clock.Now().Location()
	infos := make([]Info, 0, len(names))
	for i, name := range names {
		path := m.ArchivePath(name)
		stat, err := m.fs.Stat(path)
		if err != nil {
			return nil, errors.WrapFS("stat", path, err)
		}

		info := Info{
			Index:    i + 1,
			Name:     name,
			Size:     stat.Size(),
			Modified: stat.ModTime(),
		}
		if parsed, ok := ParseName(name, loc); ok {
			created := parsed.Timestamp
			info.Created = &created
			info.Comment = parsed.Comment
		}
		if withDigests {
			if info.Digest, err = m.Digest(name); err != nil {
				return nil, err
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Digest computes the sha256 digest of the named archive's bytes.
func (m *Manager) Digest(name string) (digest.Digest, error) {
	path := m.ArchivePath(name)
	f, err := m.fs.Open(path)
	if err != nil {
		return "", errors.WrapFS("open", path, err)
	}
	defer f.Close()

	d, err := digest.FromReader(f)
	if err != nil {
		return "", errors.WrapFS("read", path, err)
	}
	return d, nil
}
