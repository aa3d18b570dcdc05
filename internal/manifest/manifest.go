// Package manifest loads the community terms manifest: the per-community JSON file
// naming each standardized term vocabulary file together with its namespace
// metadata and the spreadsheet it is generated from.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/neurobagel/communities/internal/vocab"
	"github.com/tidwall/gjson"
)

// FileName is the manifest file expected in every community configuration directory.
const FileName = "community_terms_manifest.json"

var (
	// ErrDirNotFound is returned when the community directory does not exist.
	ErrDirNotFound = errors.New("community directory does not exist")
	// ErrManifestNotFound is returned when the directory has no manifest file.
	ErrManifestNotFound = errors.New("terms manifest not found")
)

// Entry describes one vocabulary file generated from a spreadsheet.
type Entry struct {
	OutputFile          string `json:"-" validate:"required,endswith=.json,excludes=/,ne=community_terms_manifest.json"`
	NamespacePrefix     string `json:"namespace_prefix" validate:"required"`
	NamespaceURL        string `json:"namespace_url" validate:"required,url"`
	VocabularyName      string `json:"vocabulary_name" validate:"required"`
	Version             string `json:"version" validate:"required,semver"`
	SourceSpreadsheetID string `json:"source_spreadsheet_id" validate:"required"`
}

// Metadata returns the vocabulary metadata carried by the entry.
func (e Entry) Metadata() vocab.Metadata {
	return vocab.Metadata{
		NamespacePrefix: e.NamespacePrefix,
		NamespaceURL:    e.NamespaceURL,
		VocabularyName:  e.VocabularyName,
		Version:         e.Version,
	}
}

// Manifest is a loaded terms manifest. Entries keep the order of the file.
type Manifest struct {
	Dir     string
	Entries []Entry
}

// OutputPath returns where the vocabulary for e is written.
func (m *Manifest) OutputPath(e Entry) string {
	return filepath.Join(m.Dir, e.OutputFile)
}

// Entry returns the entry producing the named output file.
func (m *Manifest) Entry(outputFile string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.OutputFile == outputFile {
			return e, true
		}
	}
	return Entry{}, false
}

// Load reads and validates the manifest of the community directory dir.
func Load(dir string) (*Manifest, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
	}

	path := filepath.Join(dir, FileName)
	info, err = os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{Dir: dir, Entries: entries}, nil
}

// Parse decodes and validates manifest JSON, preserving entry order.
func Parse(data []byte) ([]Entry, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("manifest is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("manifest must be a JSON object keyed by output file name")
	}

	var (
		entries []Entry
		errs    []error
		seen    = map[string]bool{}
	)
	root.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if seen[name] {
			errs = append(errs, fmt.Errorf("entry %q: duplicate output file", name))
			return true
		}
		seen[name] = true

		if !value.IsObject() {
			errs = append(errs, fmt.Errorf("entry %q: must be a JSON object", name))
			return true
		}
		var e Entry
		if err := json.Unmarshal([]byte(value.Raw), &e); err != nil {
			errs = append(errs, fmt.Errorf("entry %q: %w", name, err))
			return true
		}
		e.OutputFile = name
		entries = append(entries, e)
		return true
	})

	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(entries) == 0 {
		return nil, errors.New("manifest has no entries")
	}
	return entries, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return "output_file"
		}
		return name
	})
	_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
		_, err := semver.NewVersion(fl.Field().String())
		return err == nil
	})
	return v
}

func validateEntry(e Entry) error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("entry %q: %w", e.OutputFile, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed '%s' check", fe.Field(), describeTag(fe)))
	}
	return fmt.Errorf("entry %q: %s", e.OutputFile, strings.Join(msgs, "; "))
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
