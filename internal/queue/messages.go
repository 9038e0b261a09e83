package queue

// ConvertJobMsg asks the worker to convert every pathway file under one
// source export directory into graph archives.
type ConvertJobMsg struct {
	Source        string `json:"source"`
	InputDir      string `json:"input_dir"`
	OutputDir     string `json:"output_dir"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// MergeJobMsg asks the worker to rebuild the universe archive from the
// per-source archive directories under Root.
type MergeJobMsg struct {
	Root          string `json:"root"`
	Output        string `json:"output,omitempty"`
	Flatten       bool   `json:"flatten"`
	Normalize     bool   `json:"normalize"`
	CorrelationID string `json:"correlation_id,omitempty"`
}
