package storage

// This file decodes the ad hoc JSON layouts written by earlier releases.
// Each decoder tries a fixed list of shapes in priority order and stops at
// the first match.

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/en-o/codeshelf/pkg/types"
)

// LegacyLocator finds the directories of a previous install. Reporting false
// for both is the normal outcome of a fresh install.
type LegacyLocator interface {
	LegacyDataDir() (string, bool)
	LegacyConfigDir() (string, bool)
}

// noLegacy is the locator of an install with no previous version.
type noLegacy struct{}

func (noLegacy) LegacyDataDir() (string, bool)   { return "", false }
func (noLegacy) LegacyConfigDir() (string, bool) { return "", false }

// sequenceShape is one accepted layout of a document holding a named sequence.
type sequenceShape struct {
	name  string
	match func(doc []byte, field string) (json.RawMessage, bool)
}

// sequenceShapes lists the legacy layouts of a sequence, highest priority first.
var sequenceShapes = []sequenceShape{
	{"bare array", matchBareArray},
	{"versioned envelope", matchEnvelopeField},
	{"wrapped object", matchObjectField},
}

// matchBareArray matches `[...]`.
func matchBareArray(doc []byte, _ string) (json.RawMessage, bool) {
	if leadingByte(doc) != '[' {
		return nil, false
	}
	return doc, true
}

// matchEnvelopeField matches `{"data": {"<field>": ...}}`.
func matchEnvelopeField(doc []byte, field string) (json.RawMessage, bool) {
	obj, ok := asObject(doc)
	if !ok {
		return nil, false
	}
	inner, ok := asObject(obj["data"])
	if !ok {
		return nil, false
	}
	v, ok := inner[field]
	return v, ok
}

// matchObjectField matches `{"<field>": ...}`.
func matchObjectField(doc []byte, field string) (json.RawMessage, bool) {
	obj, ok := asObject(doc)
	if !ok {
		return nil, false
	}
	v, ok := obj[field]
	return v, ok
}

func leadingByte(doc []byte) byte {
	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 {
		return 0
	}
	return doc[0]
}

func asObject(doc []byte) (map[string]json.RawMessage, bool) {
	if leadingByte(doc) != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(doc, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// matchSequence returns the sub-document holding the sequence named by the
// first field that any shape matches. Invalid JSON is a parse error; no
// match is reported with ok == false.
func matchSequence(content []byte, fields ...string) (raw json.RawMessage, shape string, ok bool, err error) {
	if !json.Valid(content) {
		return nil, "", false, fmt.Errorf("%w: invalid JSON", types.ErrParse)
	}
	for _, field := range fields {
		for _, s := range sequenceShapes {
			if raw, ok := s.match(content, field); ok {
				return raw, s.name, true, nil
			}
		}
	}
	return nil, "", false, nil
}

// ParseProjects decodes a legacy projects document. A document matching no
// known shape is an error: project data is critical.
func ParseProjects(content []byte) ([]types.Project, error) {
	raw, shape, ok, err := matchSequence(content, "projects")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized projects format", types.ErrParse)
	}
	var projects []types.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("%w: decode projects (%s): %w", types.ErrParse, shape, err)
	}
	if projects == nil {
		projects = []types.Project{}
	}
	return projects, nil
}

// ParseStringArray decodes a legacy string sequence stored under field. A
// document matching no known shape yields an empty slice: label and category
// data is not critical.
func ParseStringArray(content []byte, field string) ([]string, error) {
	return parseStringArray(content, field)
}

// parseStringArray is ParseStringArray over several candidate field names,
// tried in order.
func parseStringArray(content []byte, fields ...string) ([]string, error) {
	raw, shape, ok, err := matchSequence(content, fields...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode %s (%s): %w", types.ErrParse, fields[0], shape, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// ParseProfiles decodes one legacy claude_profiles_<env>.json file.
func ParseProfiles(content []byte) ([]types.ConfigProfile, error) {
	raw, shape, ok, err := matchSequence(content, "profiles")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized profiles format", types.ErrParse)
	}
	var profiles []types.ConfigProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("%w: decode profiles (%s): %w", types.ErrParse, shape, err)
	}
	if profiles == nil {
		profiles = []types.ConfigProfile{}
	}
	return profiles, nil
}

// statsShape is one accepted layout of a legacy stats cache.
type statsShape struct {
	name  string
	match func(obj map[string]json.RawMessage, doc []byte) (json.RawMessage, bool)
}

// statsShapes lists the legacy stats cache layouts, highest priority first.
var statsShapes = []statsShape{
	{"versioned envelope", func(obj map[string]json.RawMessage, _ []byte) (json.RawMessage, bool) {
		if _, ok := obj["version"]; !ok {
			return nil, false
		}
		data, ok := obj["data"]
		if !ok || leadingByte(data) != '{' {
			return nil, false
		}
		return data, true
	}},
	{"bare object", func(_ map[string]json.RawMessage, doc []byte) (json.RawMessage, bool) {
		return doc, true
	}},
}

// ParseStatsCache decodes a legacy stats cache. Anything but a JSON object is
// a parse error.
func ParseStatsCache(content []byte) (types.StatsCacheData, error) {
	if !json.Valid(content) {
		return types.StatsCacheData{}, fmt.Errorf("%w: invalid JSON", types.ErrParse)
	}
	obj, ok := asObject(content)
	if !ok {
		return types.StatsCacheData{}, fmt.Errorf("%w: stats cache is not an object", types.ErrParse)
	}
	for _, s := range statsShapes {
		raw, ok := s.match(obj, content)
		if !ok {
			continue
		}
		var data types.StatsCacheData
		if err := json.Unmarshal(raw, &data); err != nil {
			return types.StatsCacheData{}, fmt.Errorf("%w: decode stats cache (%s): %w", types.ErrParse, s.name, err)
		}
		return data.Normalized(), nil
	}
	return types.StatsCacheData{}, fmt.Errorf("%w: unrecognized stats cache format", types.ErrParse)
}
