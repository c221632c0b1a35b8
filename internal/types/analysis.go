package types

// ResumeAnalysis is the stored record of an uploaded resume
type ResumeAnalysis struct {
	ResumeID      string          `json:"resume_id"`
	Filename      string          `json:"filename"`
	ContentType   string          `json:"content_type"`
	FileSize      int             `json:"file_size"`
	UploadTime    string          `json:"upload_time"` // RFC3339
	ContentHash   string          `json:"content_hash,omitempty"`
	SectionsFound []ResumeSection `json:"sections_found"`
	WordCount     int             `json:"word_count"`
	ParsedContent ParsedResume    `json:"parsed_content"`
}
