package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes an ingested document
type Metadata struct {
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type"`
	Format      Format `json:"format"`
	Size        int    `json:"size"`
	Timestamp   string `json:"timestamp"` // RFC3339 format
	Hash        string `json:"hash"`      // SHA256 hex digest of the cleaned text
}

// NewMetadata records doc and the text extracted from it at time now.
func NewMetadata(doc Document, format Format, text string, now time.Time) *Metadata {
	return &Metadata{
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
		Format:      format,
		Size:        len(doc.Data),
		Timestamp:   now.UTC().Format(time.RFC3339),
		Hash:        computeHash(text),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return data, nil
}
