package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/ib-77/pengine/pkg/engine"
	"gopkg.in/yaml.v3"
)

// Manifest names the catalog entries for each engine slot. Empty names leave
// the slot alone. Algorithms maps the engine's algorithm name to a catalog
// name, so one catalog entry may back several algorithms.
type Manifest struct {
	DataSource string            `yaml:"datasource,omitempty"`
	Preparator string            `yaml:"preparator,omitempty"`
	Algorithms map[string]string `yaml:"algorithms,omitempty"`
	Serving    string            `yaml:"serving,omitempty"`
}

// Load reads a manifest file. ${VAR} and $VAR references are expanded from
// the environment before parsing.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: load: %w", err)
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes a manifest, rejecting unknown keys.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return Manifest{}, fmt.Errorf("manifest: parse: %w", err)
	}
	return m, nil
}

// Marshal renders the manifest as YAML.
func (m Manifest) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("manifest: marshal: %w", err)
	}
	return out, nil
}

// Apply resolves every name in m against c and sets the results on b. When
// any name is unknown, or an algorithm name is empty, b is left untouched
// and all problems are returned joined.
func Apply[TD, DP, PD, Q, P, A any](m Manifest, c *Catalog[TD, DP, PD, Q, P, A], b *engine.Builder[TD, DP, PD, Q, P, A]) error {
	var errs []error

	ds := lookup(c.dataSources, engine.StageDataSource, m.DataSource, &errs)
	prep := lookup(c.preparators, engine.StagePreparator, m.Preparator, &errs)
	serving := lookup(c.servings, engine.StageServing, m.Serving, &errs)

	names := slices.Sorted(maps.Keys(m.Algorithms))
	algos := make([]engine.Ref[engine.ModelAlgorithm[PD, Q, P]], len(names))
	for i, name := range names {
		if name == "" {
			errs = append(errs, fmt.Errorf("%w: empty algorithm name", engine.ErrInvalidArgument))
			continue
		}
		if m.Algorithms[name] == "" {
			errs = append(errs, fmt.Errorf("%w: algorithm %q has no catalog name", engine.ErrInvalidArgument, name))
			continue
		}
		algos[i] = lookup(c.algorithms, engine.StageAlgorithm, m.Algorithms[name], &errs)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if !ds.IsZero() {
		b.DataSource(ds)
	}
	if !prep.IsZero() {
		b.Preparator(prep)
	}
	for i, name := range names {
		b.AddAlgorithm(name, algos[i])
	}
	if !serving.IsZero() {
		b.Serving(serving)
	}
	return nil
}

// Describe captures the catalog names held by e as a manifest.
func Describe[TD, DP, PD, Q, P, A any](e *engine.Engine[TD, DP, PD, Q, P, A]) Manifest {
	var m Manifest
	if ref, ok := e.DataSource(); ok {
		m.DataSource = ref.Name()
	}
	if ref, ok := e.Preparator(); ok {
		m.Preparator = ref.Name()
	}
	if ref, ok := e.Serving(); ok {
		m.Serving = ref.Name()
	}
	if algos := e.Algorithms(); len(algos) > 0 {
		m.Algorithms = make(map[string]string, len(algos))
		for name, ref := range algos {
			m.Algorithms[name] = ref.Name()
		}
	}
	return m
}
