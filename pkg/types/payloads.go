package types

import "encoding/json"

// Stats cache (stats_cache.json). Keys are snake_case, matching what the
// dashboard reads.

// DashboardStats holds the aggregate counters shown on the dashboard.
type DashboardStats struct {
	TotalProjects    int `json:"total_projects"`
	TodayCommits     int `json:"today_commits"`
	WeekCommits      int `json:"week_commits"`
	UnpushedCommits  int `json:"unpushed_commits"`
	UnmergedBranches int `json:"unmerged_branches"`
}

// DailyActivity is one cell of the commit heatmap.
type DailyActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RecentCommit is a commit listed on the dashboard.
type RecentCommit struct {
	Hash        string `json:"hash"`
	ShortHash   string `json:"short_hash"`
	Message     string `json:"message"`
	Author      string `json:"author"`
	Email       string `json:"email"`
	Date        string `json:"date"`
	ProjectName string `json:"project_name"`
	ProjectPath string `json:"project_path"`
}

// ProjectStats is the cached per-project slice of the dashboard. Dirty
// entries are recomputed on the next refresh.
type ProjectStats struct {
	Name             string         `json:"name"`
	Path             string         `json:"path"`
	Dirty            bool           `json:"dirty"`
	LastCommitHash   string         `json:"last_commit_hash,omitempty"`
	TodayCommits     int            `json:"today_commits"`
	WeekCommits      int            `json:"week_commits"`
	UnpushedCommits  int            `json:"unpushed_commits"`
	UnmergedBranches int            `json:"unmerged_branches"`
	DailyCounts      map[string]int `json:"daily_counts,omitempty"`
	UpdatedAt        string         `json:"updated_at,omitempty"`
}

// StatsCacheData is the payload of stats_cache.json.
type StatsCacheData struct {
	Projects      map[string]ProjectStats `json:"projects"`
	Dashboard     DashboardStats          `json:"dashboard"`
	HeatmapData   []DailyActivity         `json:"heatmap_data"`
	RecentCommits []RecentCommit          `json:"recent_commits"`
	UpdatedAt     string                  `json:"updated_at,omitempty"`
}

// NewStatsCacheData returns an empty cache.
func NewStatsCacheData() StatsCacheData {
	return StatsCacheData{}.Normalized()
}

// Normalized replaces nil collections with empty ones.
func (d StatsCacheData) Normalized() StatsCacheData {
	if d.Projects == nil {
		d.Projects = map[string]ProjectStats{}
	}
	if d.HeatmapData == nil {
		d.HeatmapData = []DailyActivity{}
	}
	if d.RecentCommits == nil {
		d.RecentCommits = []RecentCommit{}
	}
	return d
}

// Claude profiles (claude_profiles.json).

// ConfigProfile is a named set of Claude settings. Unmodelled keys are kept
// in Extra, as for Project.
type ConfigProfile struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the modelled fields and keeps the rest in Extra.
func (p *ConfigProfile) UnmarshalJSON(data []byte) error {
	type plain ConfigProfile
	var v plain
	extra, err := splitExtra(data, &v, "id", "name")
	if err != nil {
		return err
	}
	v.Extra = extra
	*p = ConfigProfile(v)
	return nil
}

// MarshalJSON encodes the modelled fields followed by Extra.
func (p ConfigProfile) MarshalJSON() ([]byte, error) {
	type plain ConfigProfile
	b, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, p.Extra)
}

// EnvironmentProfiles holds the profiles of one environment.
type EnvironmentProfiles struct {
	Profiles []ConfigProfile `json:"profiles"`
}

// ClaudeProfilesData is the payload of claude_profiles.json, keyed by
// environment name.
type ClaudeProfilesData struct {
	Environments map[string]EnvironmentProfiles `json:"environments"`
}

// NewClaudeProfilesData returns a payload with no environments.
func NewClaudeProfilesData() ClaudeProfilesData {
	return ClaudeProfilesData{Environments: map[string]EnvironmentProfiles{}}
}

// Count returns the number of profiles across all environments.
func (d ClaudeProfilesData) Count() int {
	n := 0
	for _, env := range d.Environments {
		n += len(env.Profiles)
	}
	return n
}

// LabelsData is the payload of labels.json.
type LabelsData struct {
	Labels []string `json:"labels"`
}

// CategoriesData is the payload of categories.json.
type CategoriesData struct {
	Categories []string `json:"categories"`
}

// Toolbox data. The store does not interpret individual entries.

// DownloadTasksData is the payload of download_tasks.json.
type DownloadTasksData struct {
	Tasks []json.RawMessage `json:"tasks"`
}

// ForwardRulesData is the payload of forward_rules.json.
type ForwardRulesData struct {
	Rules []json.RawMessage `json:"rules"`
}

// ServerConfigsData is the payload of server_configs.json.
type ServerConfigsData struct {
	Servers []json.RawMessage `json:"servers"`
}

// Settings.

// EditorConfig is a user-registered editor. Path is the command or
// executable used to open a project.
type EditorConfig struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	IsDefault bool   `json:"is_default,omitempty"`
}

// EditorsData is the payload of editors.json.
type EditorsData struct {
	Editors []EditorConfig `json:"editors"`
}

// DefaultEditor returns the command of the editor marked default, falling
// back to the first registered editor. It returns "" when none is registered.
func (d EditorsData) DefaultEditor() string {
	for _, e := range d.Editors {
		if e.IsDefault && e.Path != "" {
			return e.Path
		}
	}
	for _, e := range d.Editors {
		if e.Path != "" {
			return e.Path
		}
	}
	return ""
}

// Terminal types accepted in terminal.json.
const (
	TerminalDefault    = "default"
	TerminalPowerShell = "powershell"
	TerminalCmd        = "cmd"
	TerminalApp        = "terminal"
	TerminalITerm      = "iterm"
	TerminalCustom     = "custom"
)

// TerminalData is the payload of terminal.json.
type TerminalData struct {
	Type       string `json:"type"`
	CustomPath string `json:"custom_path,omitempty"`
}

// AppSettingsData is the payload of app_settings.json.
type AppSettingsData struct {
	Theme    string `json:"theme"`
	ViewMode string `json:"view_mode"`
}

// UIStateData is the payload of ui_state.json.
type UIStateData struct {
	SidebarCollapsed bool   `json:"sidebar_collapsed"`
	SelectedCategory string `json:"selected_category,omitempty"`
	SelectedProject  string `json:"selected_project,omitempty"`
}

// Notification is a stored in-app notification.
type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// NotificationsData is the payload of notifications.json.
type NotificationsData struct {
	Notifications []Notification `json:"notifications"`
}

// ClaudeQuickConfigsData is the payload of claude_quick_configs.json.
type ClaudeQuickConfigsData struct {
	Configs []json.RawMessage `json:"configs"`
}

// ClaudeInstallationsCacheData is the payload of claude_installations_cache.json.
type ClaudeInstallationsCacheData struct {
	Installations []json.RawMessage `json:"installations"`
	CheckedAt     string            `json:"checked_at,omitempty"`
}
