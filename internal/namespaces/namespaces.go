// Package namespaces builds the map of namespaces used by each community
// configuration, read from its standardized variable and term vocabulary files.
package namespaces

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/neurobagel/communities/internal/manifest"
)

// VariablesFile is the standardized variable configuration of a community.
const VariablesFile = "config.json"

// Namespace is a prefix and the URL it expands to.
type Namespace struct {
	Prefix string `json:"namespace_prefix"`
	URL    string `json:"namespace_url"`
}

// ImagingNamespaces are required for processing imaging data and are added to
// every configuration's term namespaces.
var ImagingNamespaces = []Namespace{
	{Prefix: "nidm", URL: "http://purl.org/nidash/nidm#"},
	{Prefix: "np", URL: "https://github.com/nipoppy/pipeline-catalog/tree/main/processing/"},
}

// Namespaces lists the namespaces of one configuration. Variables is nil when
// the configuration has no variables file.
type Namespaces struct {
	Variables *[]Namespace `json:"variables,omitempty"`
	Terms     []Namespace  `json:"terms"`
}

// ConfigNamespaces is one entry of the namespace map.
type ConfigNamespaces struct {
	ConfigName string     `json:"config_name"`
	Namespaces Namespaces `json:"namespaces"`
}

// appendUnique appends the namespaces in src not already present in dst.
func appendUnique(dst []Namespace, src ...Namespace) []Namespace {
	for _, ns := range src {
		found := false
		for _, existing := range dst {
			if existing == ns {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, ns)
		}
	}
	return dst
}

// CollectFromFile returns the unique namespaces of the configuration file at
// path, in first-seen order. The file must hold a JSON array of objects with
// namespace_prefix and namespace_url keys.
func CollectFromFile(path string) ([]Namespace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []struct {
		Prefix *string `json:"namespace_prefix"`
		URL    *string `json:"namespace_url"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	unique := []Namespace{}
	for i, e := range entries {
		if e.Prefix == nil || e.URL == nil {
			return nil, fmt.Errorf("%s: entry %d is missing namespace_prefix or namespace_url", path, i)
		}
		unique = appendUnique(unique, Namespace{Prefix: *e.Prefix, URL: *e.URL})
	}
	return unique, nil
}

// ForConfig collects the namespaces used by the configuration directory dir.
// The terms manifest is skipped; every other JSON file besides the variables
// file is a term vocabulary.
func ForConfig(dir string) (ConfigNamespaces, error) {
	files, err := doublestar.Glob(os.DirFS(dir), "*.json", doublestar.WithFilesOnly())
	if err != nil {
		return ConfigNamespaces{}, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(files)

	result := ConfigNamespaces{ConfigName: filepath.Base(dir)}
	terms := []Namespace{}
	for _, name := range files {
		if name == manifest.FileName {
			continue
		}
		found, err := CollectFromFile(filepath.Join(dir, name))
		if err != nil {
			return ConfigNamespaces{}, err
		}
		if name == VariablesFile {
			variables := found
			result.Namespaces.Variables = &variables
			continue
		}
		terms = appendUnique(terms, found...)
	}

	result.Namespaces.Terms = appendUnique(terms, ImagingNamespaces...)
	return result, nil
}

// Build returns the namespace map for every configuration directory under
// configsDir, sorted by directory name.
func Build(configsDir string) ([]ConfigNamespaces, error) {
	entries, err := os.ReadDir(configsDir)
	if err != nil {
		return nil, fmt.Errorf("reading configs directory: %w", err)
	}

	result := []ConfigNamespaces{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ns, err := ForConfig(filepath.Join(configsDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		result = append(result, ns)
	}
	return result, nil
}
