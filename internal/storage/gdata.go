package storage

import (
	"fmt"
	"strings"

	"github.com/quasilyte/gdata/v2"
)

const flagsObject = "flags"

// GdataStore keeps flags in the per-user application data directory.
type GdataStore struct {
	m *gdata.Manager
}

// OpenGdata opens the data directory for appName.
func OpenGdata(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open data dir: %w", err)
	}
	return &GdataStore{m: m}, nil
}

// Flag returns the boolean stored under key. Missing keys read as false.
func (g *GdataStore) Flag(key string) (bool, error) {
	prop := propName(key)
	if !g.m.ObjectPropExists(flagsObject, prop) {
		return false, nil
	}
	data, err := g.m.LoadObjectProp(flagsObject, prop)
	if err != nil {
		return false, fmt.Errorf("storage: cannot read flag %s: %w", key, err)
	}
	return string(data) == "1", nil
}

// SetFlag stores value under key.
func (g *GdataStore) SetFlag(key string, value bool) error {
	data := []byte("0")
	if value {
		data = []byte("1")
	}
	if err := g.m.SaveObjectProp(flagsObject, propName(key), data); err != nil {
		return fmt.Errorf("storage: cannot save flag %s: %w", key, err)
	}
	return nil
}

var propReplacer = strings.NewReplacer(":", "_", "/", "_", "\\", "_")

// propName maps a flag key to a file-safe property name.
func propName(key string) string {
	return propReplacer.Replace(key)
}
