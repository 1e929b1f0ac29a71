package models

// Manifest advertises the add-on's identity and capabilities to the host application.
type Manifest struct {
	ID          string   `json:"id" yaml:"id"`
	Version     string   `json:"version" yaml:"version"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Resources   []string `json:"resources" yaml:"resources"`
	Types       []string `json:"types" yaml:"types"`
	IDPrefixes  []string `json:"idPrefixes" yaml:"idPrefixes"`
}
