package vocab

import (
	"bytes"
	"encoding/json"

	"github.com/neurobagel/communities/internal/logger"
)

// Metadata identifies the namespace and version of a term vocabulary.
// Field order is the key order of the emitted record.
type Metadata struct {
	NamespacePrefix string `json:"namespace_prefix"`
	NamespaceURL    string `json:"namespace_url"`
	VocabularyName  string `json:"vocabulary_name"`
	Version         string `json:"version"`
}

// Field is one attribute of a term.
type Field struct {
	Key   string
	Value *string
}

// Term is an ordered set of attributes, serialized as a JSON object whose keys
// follow the table's column order. Missing values serialize as null.
type Term []Field

// MarshalJSON implements json.Marshaler.
func (t Term) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeValue(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := encodeValue(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeValue marshals v without HTML escaping so the enclosing encoder decides.
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Record is a vocabulary's metadata together with its terms.
type Record struct {
	Metadata
	Terms []Term `json:"terms"`
}

// Vocabulary is the top-level JSON value of a standardized term vocabulary file:
// a sequence holding exactly one record.
type Vocabulary []Record

// Terms converts every row of t into a term.
func Terms(t Table) []Term {
	terms := make([]Term, 0, len(t.Rows))
	for _, row := range t.Rows {
		term := make(Term, len(t.Columns))
		for i, c := range t.Columns {
			term[i] = Field{Key: c, Value: row.at(i)}
		}
		terms = append(terms, term)
	}
	return terms
}

// Assemble combines metadata and the rows of t into a vocabulary. The metadata
// keys are emitted first, followed by terms.
func Assemble(t Table, meta Metadata) Vocabulary {
	return Vocabulary{{Metadata: meta, Terms: Terms(t)}}
}

// CreateTermsJSON removes rows marked invalid, logs each removed term, and
// assembles the remaining rows into a vocabulary.
func CreateTermsJSON(t Table, meta Metadata, log logger.Logger) Vocabulary {
	valid, removed := RemoveInvalidRows(t)
	LogRemoved(log, removed)
	return Assemble(valid, meta)
}

// LogRemoved writes one info line with the number of removed terms followed by
// one line per term. Nothing is logged when removed is empty.
func LogRemoved(log logger.Logger, removed []InvalidTerm) {
	if len(removed) == 0 {
		return
	}
	log.Info("invalid term(s) removed", "count", len(removed))
	for _, term := range removed {
		log.Info("removed term", "id", term.ID, "name", term.Name, "invalid_reason", term.Reason)
	}
}
