package store

import (
	"errors"
	"fmt"
	"strings"

	"cave-ca/internal/sims/cave"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	reportsObject = "reports"
	lastProperty  = "last"
)

// ErrNotFound is returned when no report is stored under the requested key.
var ErrNotFound = errors.New("report not found")

// Reports keeps generation reports in the per-user data directory. A nil
// manager keeps the store usable without persistence: saves are dropped and
// loads report ErrNotFound.
type Reports struct {
	m *gdata.Manager
}

// Open creates a store rooted at the data directory of appName.
func Open(appName string) (*Reports, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open report store: %w", err)
	}
	return &Reports{m: m}, nil
}

// New wraps an existing manager, which may be nil.
func New(m *gdata.Manager) *Reports {
	return &Reports{m: m}
}

// Persistent reports whether saves reach disk.
func (r *Reports) Persistent() bool { return r.m != nil }

// Key returns the property name a report is stored under: its export
// filename without the extension.
func Key(rep cave.Report) string {
	return strings.TrimSuffix(rep.Filename(), ".png")
}

// Save stores rep under Key(rep) and marks it as the last report.
func (r *Reports) Save(rep cave.Report) (string, error) {
	key := Key(rep)
	if r.m == nil {
		return key, nil
	}
	data, err := yaml.Marshal(rep)
	if err != nil {
		return key, fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := r.m.SaveObjectProp(reportsObject, key, data); err != nil {
		return key, fmt.Errorf("failed to save report %s: %w", key, err)
	}
	if err := r.m.SaveObjectProp(reportsObject, lastProperty, data); err != nil {
		return key, fmt.Errorf("failed to save last report: %w", err)
	}
	return key, nil
}

// Exists reports whether a report is stored under key.
func (r *Reports) Exists(key string) bool {
	if r.m == nil {
		return false
	}
	return r.m.ObjectPropExists(reportsObject, key)
}

// Load returns the report stored under key.
func (r *Reports) Load(key string) (cave.Report, error) {
	if !r.Exists(key) {
		return cave.Report{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	data, err := r.m.LoadObjectProp(reportsObject, key)
	if err != nil {
		return cave.Report{}, fmt.Errorf("failed to load report %s: %w", key, err)
	}
	var rep cave.Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return cave.Report{}, fmt.Errorf("failed to unmarshal report %s: %w", key, err)
	}
	return rep, nil
}

// Last returns the most recently saved report.
func (r *Reports) Last() (cave.Report, error) {
	return r.Load(lastProperty)
}
