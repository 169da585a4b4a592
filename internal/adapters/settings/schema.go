package settings

// File represents the structure of the seclens.yaml settings file.
type File struct {
	Version  string      `yaml:"version"`
	Projects []ProjectTO `yaml:"projects"`
	Filter   *FilterTO   `yaml:"assessFilter"`
}

// ProjectTO represents one configured project record. Minute is kept as a
// string to match the persisted layout of the settings store.
type ProjectTO struct {
	ProjectID   string `yaml:"projectId"`
	ProjectName string `yaml:"projectName"`
	Source      string `yaml:"source"`
	Minute      string `yaml:"minute"`
	OrgID       string `yaml:"orgId"`
	APIKey      string `yaml:"apiKey"`
	ServiceKey  string `yaml:"serviceKey"`
	BaseURL     string `yaml:"baseUrl"`
}

// FilterTO represents the persisted assess filter.
type FilterTO struct {
	Severities []string          `yaml:"severities"`
	Statuses   []string          `yaml:"status"`
	StartDate  string            `yaml:"startDate"`
	EndDate    string            `yaml:"endDate"`
	Metadata   map[string]string `yaml:"metadata"`
}
