package insight

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AuditPayload models the slice of a PageSpeed Insights report this service
// reads. Every leaf field is optional; absent fields decode to zero values.
type AuditPayload struct {
	LighthouseResult *LighthouseResult `json:"lighthouseResult"`
}

// LighthouseResult holds the category score and the audit mapping.
type LighthouseResult struct {
	Categories Categories `json:"categories"`
	Audits     AuditMap   `json:"audits"`
}

// Categories exposes the performance category.
type Categories struct {
	Performance *Category `json:"performance"`
}

// Category carries the 0-1 score fraction when present.
type Category struct {
	Score *float64 `json:"score"`
}

// Audit is a single named measurement within the report.
type Audit struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	DisplayValue string        `json:"displayValue"`
	Details      *AuditDetails `json:"details"`
}

// AuditDetails varies by audit type; only the fields this service consumes
// are modeled.
type AuditDetails struct {
	Type             string        `json:"type"`
	OverallSavingsMs *float64      `json:"overallSavingsMs"`
	Chains           ChainMap      `json:"chains"`
	Items            []ResourceRow `json:"items"`
}

// Chain is one node of a critical request chain tree.
type Chain struct {
	Request  ChainRequest     `json:"request"`
	Children map[string]Chain `json:"children"`
}

// ChainRequest carries the request timings in seconds.
type ChainRequest struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

// ResourceRow is one line of the resource-summary audit.
type ResourceRow struct {
	ResourceType string  `json:"resourceType"`
	Label        string  `json:"label"`
	RequestCount int     `json:"requestCount"`
	TransferSize float64 `json:"transferSize"`
}

// AuditMap is an insertion-ordered audit-id → audit mapping. The payload's
// own key order decides opportunity order and chain tie-breaks, and Go maps
// do not preserve it, so the order is kept explicitly.
type AuditMap struct {
	IDs     []string
	Entries map[string]Audit
}

// Get looks up an audit by id.
func (m AuditMap) Get(id string) (Audit, bool) {
	audit, ok := m.Entries[id]
	return audit, ok
}

// UnmarshalJSON decodes the audits object while recording key order.
func (m *AuditMap) UnmarshalJSON(data []byte) error {
	return decodeOrdered(data, "audits", func(key string, dec *json.Decoder) error {
		var audit Audit
		if err := dec.Decode(&audit); err != nil {
			return err
		}
		if m.Entries == nil {
			m.Entries = make(map[string]Audit)
		}
		m.IDs = append(m.IDs, key)
		m.Entries[key] = audit
		return nil
	})
}

// ChainMap is an insertion-ordered chain-id → chain mapping.
type ChainMap struct {
	IDs     []string
	Entries map[string]Chain
}

// UnmarshalJSON decodes the chains object while recording key order.
func (m *ChainMap) UnmarshalJSON(data []byte) error {
	return decodeOrdered(data, "chains", func(key string, dec *json.Decoder) error {
		var chain Chain
		if err := dec.Decode(&chain); err != nil {
			return err
		}
		if m.Entries == nil {
			m.Entries = make(map[string]Chain)
		}
		m.IDs = append(m.IDs, key)
		m.Entries[key] = chain
		return nil
	})
}

// decodeOrdered walks a JSON object token by token so callers see keys in
// document order. A JSON null leaves the target empty.
func decodeOrdered(data []byte, label string, decodeValue func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode %s: %w", label, err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode %s: expected object, got %v", label, tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode %s key: %w", label, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode %s key: unexpected token %v", label, keyTok)
		}
		if err := decodeValue(key, dec); err != nil {
			return fmt.Errorf("decode %s[%s]: %w", label, key, err)
		}
	}
	return nil
}
