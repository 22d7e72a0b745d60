// Package catalog loads and stores the ordered image sources a carousel
// displays.
//
// Catalogs come from three places: the built-in [Default] list, TOML files
// ([LoadFile]/[WriteFile]) and a MongoDB collection ([MongoStore]). Every
// catalog is validated before use: indices must be dense and in order and
// every source must be a usable identifier.
//
// A catalog file looks like:
//
//	name = "picsum"
//
//	[[items]]
//	source = "https://picsum.photos/id/237/400/400"
//
//	[[items]]
//	source = "https://picsum.photos/id/1025/400/400"
//
// Items without an explicit index take their position in the file.
package catalog

import (
	"bytes"
	"cmp"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
)

// DefaultName names the built-in catalog.
const DefaultName = "picsum"

var defaultSources = []string{
	"https://picsum.photos/id/237/400/400",
	"https://picsum.photos/id/1025/400/400",
	"https://picsum.photos/id/1005/400/400",
	"https://picsum.photos/id/1011/400/400",
	"https://picsum.photos/id/1012/400/400",
	"https://picsum.photos/id/1015/400/400",
	"https://picsum.photos/id/1024/400/400",
	"https://picsum.photos/id/1035/400/400",
	"https://picsum.photos/id/1041/400/400",
	"https://picsum.photos/id/1050/400/400",
}

// Catalog is a named, ordered list of items.
type Catalog struct {
	Name  string          `json:"name" toml:"name"`
	Items []carousel.Item `json:"items" toml:"items"`
}

// Default returns the built-in catalog of ten photos.
func Default() Catalog {
	return FromSources(DefaultName, defaultSources)
}

// FromSources builds a catalog indexing sources by position.
func FromSources(name string, sources []string) Catalog {
	items := make([]carousel.Item, len(sources))
	for i, src := range sources {
		items[i] = carousel.Item{Source: src, Index: i}
	}
	return Catalog{Name: name, Items: items}
}

// Sources returns the item sources in order.
func (c Catalog) Sources() []string {
	out := make([]string, len(c.Items))
	for i, it := range c.Items {
		out[i] = it.Source
	}
	return out
}

// Hash identifies the catalog's content for cache keys.
func (c Catalog) Hash() string {
	return cache.HashJSON(c.Items)
}

// Validate checks that indices are 0..n-1 in order and that every source is
// valid. It returns INVALID_INPUT or INVALID_SOURCE errors.
func (c Catalog) Validate() error {
	for i, it := range c.Items {
		if it.Index != i {
			return errors.New(errors.ErrCodeInvalidInput, "catalog %q: item %d has index %d", c.Name, i, it.Index)
		}
		if err := errors.ValidateSource(it.Source); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSource, err, "catalog %q: item %d", c.Name, i)
		}
	}
	return nil
}

// fileItem allows the index to be omitted in catalog files.
type fileItem struct {
	Source string `toml:"source"`
	Index  *int   `toml:"index,omitempty"`
}

type fileCatalog struct {
	Name  string     `toml:"name"`
	Items []fileItem `toml:"items"`
}

// Decode parses a TOML catalog. Items are ordered by index; duplicate or
// missing indices fail validation.
func Decode(data []byte) (Catalog, error) {
	var fc fileCatalog
	if _, err := toml.Decode(string(data), &fc); err != nil {
		return Catalog{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse catalog")
	}

	c := Catalog{Name: fc.Name, Items: make([]carousel.Item, len(fc.Items))}
	for i, fi := range fc.Items {
		idx := i
		if fi.Index != nil {
			idx = *fi.Index
		}
		c.Items[i] = carousel.Item{Source: fi.Source, Index: idx}
	}
	slices.SortStableFunc(c.Items, func(a, b carousel.Item) int { return cmp.Compare(a.Index, b.Index) })

	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Encode serializes a catalog to TOML.
func Encode(c Catalog) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode catalog")
	}
	return buf.Bytes(), nil
}

// LoadFile reads a TOML catalog. The catalog name defaults to the file path.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Catalog{}, errors.Wrap(errors.ErrCodeNotFound, err, "catalog %s", path)
	}
	if err != nil {
		return Catalog{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read catalog %s", path)
	}
	c, err := Decode(data)
	if err != nil {
		return Catalog{}, err
	}
	if c.Name == "" {
		c.Name = path
	}
	return c, nil
}

// WriteFile validates c and writes it as TOML.
func WriteFile(c Catalog, path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := Encode(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
