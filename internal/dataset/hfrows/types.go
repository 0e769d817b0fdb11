package hfrows

import (
	"encoding/json"
	"strings"
)

// RowsPage is the body of GET /rows.
type RowsPage struct {
	Rows         []RowEntry `json:"rows"`
	NumRowsTotal int        `json:"num_rows_total"`
	Partial      bool       `json:"partial"`
}

// RowEntry wraps one dataset row with its absolute index.
type RowEntry struct {
	RowIdx int       `json:"row_idx"`
	Row    fleursRow `json:"row"`
}

type fleursRow struct {
	ID               json.RawMessage `json:"id"`
	RawTranscription string          `json:"raw_transcription"`
	Transcription    string          `json:"transcription"`
	Audio            []audioCell     `json:"audio"`
}

type audioCell struct {
	Src  string `json:"src"`
	Type string `json:"type"`
}

type validResponse struct {
	Viewer  bool `json:"viewer"`
	Preview bool `json:"preview"`
}

// id renders numeric and string ids the same way.
func (r fleursRow) id() string {
	return strings.Trim(strings.TrimSpace(string(r.ID)), `"`)
}

func (r fleursRow) text() string {
	if r.RawTranscription != "" {
		return r.RawTranscription
	}
	return r.Transcription
}

func (r fleursRow) audioSrc() string {
	if len(r.Audio) == 0 {
		return ""
	}
	return r.Audio[0].Src
}
