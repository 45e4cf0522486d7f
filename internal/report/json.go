package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/lcvar/varprio/internal/prioritize"
)

// jsonMetadata is the metadata block of the JSON document.
type jsonMetadata struct {
	InputFile     string           `json:"input_file"`
	Date          string           `json:"date"`
	TotalVariants int              `json:"total_variants"`
	Stats         prioritize.Stats `json:"stats"`
}

// jsonDocument is the top-level JSON report shape.
type jsonDocument struct {
	Metadata jsonMetadata `json:"metadata"`
	Variants []orderedMap `json:"variants"`
}

// orderedMap is a JSON object that marshals its keys in insertion order, so
// repeated runs produce byte-identical documents.
type orderedMap struct {
	keys   []string
	values map[string]any
}

func newOrderedMap() *orderedMap {
	return &orderedMap{values: make(map[string]any)}
}

func (m *orderedMap) set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteJSON writes the JSON mirror: run metadata plus every ranked row with
// its original columns in original order and the computed priority_score,
// classification and score_components attached.
func WriteJSON(w io.Writer, meta Metadata, res *prioritize.Result) error {
	doc := jsonDocument{
		Metadata: jsonMetadata{
			InputFile:     meta.InputFile,
			Date:          meta.Date,
			TotalVariants: len(res.Rows),
			Stats:         res.Stats,
		},
		Variants: make([]orderedMap, 0, len(res.Rows)),
	}

	for _, row := range res.Rows {
		rec := newOrderedMap()
		for i, col := range res.Columns {
			rec.set(col, row.Record.Value(i))
		}

		comps := newOrderedMap()
		for _, c := range row.Breakdown {
			comps.set(c.Name, c.Value)
		}

		rec.set("priority_score", row.Score)
		rec.set("classification", string(row.Classification))
		rec.set("score_components", comps)

		doc.Variants = append(doc.Variants, *rec)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	out = append(out, '\n')

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
