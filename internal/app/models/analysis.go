package models

type AudioInput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// AnalysisResult holds the provider output as-is. Fields is the JSON object returned
// by the extraction step and is not validated beyond being present.
type AnalysisResult struct {
	Transcript string
	Fields     map[string]interface{}
}
