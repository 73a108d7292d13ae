package storage

import (
	"encoding/json"
	"slices"

	"github.com/en-o/codeshelf/pkg/types"
)

// Domain names one domain file.
type Domain string

// Known domains, in the order the ensure step visits them.
const (
	DomainProjects                 Domain = "projects"
	DomainStatsCache               Domain = "stats_cache"
	DomainClaudeProfiles           Domain = "claude_profiles"
	DomainDownloadTasks            Domain = "download_tasks"
	DomainForwardRules             Domain = "forward_rules"
	DomainServerConfigs            Domain = "server_configs"
	DomainLabels                   Domain = "labels"
	DomainCategories               Domain = "categories"
	DomainEditors                  Domain = "editors"
	DomainTerminal                 Domain = "terminal"
	DomainAppSettings              Domain = "app_settings"
	DomainUIState                  Domain = "ui_state"
	DomainNotifications            Domain = "notifications"
	DomainClaudeQuickConfigs       Domain = "claude_quick_configs"
	DomainClaudeInstallationsCache Domain = "claude_installations_cache"
)

// migrationFileName is the marker recording which transitions have run.
const migrationFileName = "migration.json"

// DefaultLabels seeds labels.json on an install with no legacy labels.
var DefaultLabels = []string{
	"Java", "Python", "JavaScript", "TypeScript", "Rust",
	"Go", "Vue", "React", "Spring Boot", "Mini Program",
}

// DefaultCategories seeds categories.json on an install with no legacy categories.
var DefaultCategories = []string{"Work", "Personal", "Study", "Testing"}

// location selects the base directory of a domain file.
type location int

const (
	inDataDir location = iota
	inConfigDir
)

// domainFile describes one domain file and the payload written when it is
// missing.
type domainFile struct {
	domain   Domain
	dir      location
	defaults func() any
}

// domainFiles lists every domain file. The ensure step walks it in order.
var domainFiles = []domainFile{
	{DomainProjects, inDataDir, func() any { return types.NewProjectsData() }},
	{DomainStatsCache, inDataDir, func() any { return types.NewStatsCacheData() }},
	{DomainClaudeProfiles, inConfigDir, func() any { return types.NewClaudeProfilesData() }},
	{DomainDownloadTasks, inDataDir, func() any { return types.DownloadTasksData{Tasks: []json.RawMessage{}} }},
	{DomainForwardRules, inDataDir, func() any { return types.ForwardRulesData{Rules: []json.RawMessage{}} }},
	{DomainServerConfigs, inDataDir, func() any { return types.ServerConfigsData{Servers: []json.RawMessage{}} }},
	{DomainLabels, inConfigDir, func() any { return types.LabelsData{Labels: slices.Clone(DefaultLabels)} }},
	{DomainCategories, inConfigDir, func() any { return types.CategoriesData{Categories: slices.Clone(DefaultCategories)} }},
	{DomainEditors, inConfigDir, func() any { return types.EditorsData{Editors: []types.EditorConfig{}} }},
	{DomainTerminal, inConfigDir, func() any { return types.TerminalData{Type: types.TerminalDefault} }},
	{DomainAppSettings, inConfigDir, func() any { return types.AppSettingsData{Theme: "light", ViewMode: "grid"} }},
	{DomainUIState, inDataDir, func() any { return types.UIStateData{} }},
	{DomainNotifications, inDataDir, func() any { return types.NotificationsData{Notifications: []types.Notification{}} }},
	{DomainClaudeQuickConfigs, inConfigDir, func() any { return types.ClaudeQuickConfigsData{Configs: []json.RawMessage{}} }},
	{DomainClaudeInstallationsCache, inDataDir, func() any {
		return types.ClaudeInstallationsCacheData{Installations: []json.RawMessage{}}
	}},
}

// Domains returns every known domain in ensure order.
func Domains() []Domain {
	out := make([]Domain, len(domainFiles))
	for i, f := range domainFiles {
		out[i] = f.domain
	}
	return out
}

// FileName returns the on-disk name of the domain file.
func (d Domain) FileName() string {
	return string(d) + ".json"
}

func lookupDomain(d Domain) (domainFile, bool) {
	for _, f := range domainFiles {
		if f.domain == d {
			return f, true
		}
	}
	return domainFile{}, false
}
