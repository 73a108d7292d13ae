package types

import "encoding/json"

// Project is one entry of the projects domain file. Keys written by older
// releases that this type does not model are kept in Extra and written back
// unchanged, so a migrated file never loses data.
type Project struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Path       string   `json:"path,omitempty"`
	IsFavorite bool     `json:"isFavorite,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Labels     []string `json:"labels,omitempty"`
	CreatedAt  string   `json:"createdAt,omitempty"`
	UpdatedAt  string   `json:"updatedAt,omitempty"`
	LastOpened string   `json:"lastOpened,omitempty"`
	RemoteURL  string   `json:"remoteUrl,omitempty"`
	RemoteType string   `json:"remoteType,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var projectKeys = []string{
	"id", "name", "path", "isFavorite", "tags", "labels",
	"createdAt", "updatedAt", "lastOpened", "remoteUrl", "remoteType",
}

// UnmarshalJSON decodes the modelled fields and keeps the rest in Extra.
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var v plain
	extra, err := splitExtra(data, &v, projectKeys...)
	if err != nil {
		return err
	}
	v.Extra = extra
	*p = Project(v)
	return nil
}

// MarshalJSON encodes the modelled fields followed by Extra.
func (p Project) MarshalJSON() ([]byte, error) {
	type plain Project
	b, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, p.Extra)
}

// ProjectsData is the payload of projects.json.
type ProjectsData struct {
	Projects []Project `json:"projects"`
}

// NewProjectsData returns an empty project list.
func NewProjectsData() ProjectsData {
	return ProjectsData{Projects: []Project{}}
}
