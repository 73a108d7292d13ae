package types

import "encoding/json"

// splitExtra decodes the members of the JSON object data whose keys are
// exactly one of known into v and returns all other members. Keys are matched
// exactly, so a case variant such as "ID" stays in the result and never
// shadows "id". A known member that v does not encode again, like an explicit
// zero value under omitempty, is returned too so that mergeExtra restores it.
// It returns nil when nothing is left over.
func splitExtra(data []byte, v any, known ...string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	modelled := make(map[string]json.RawMessage, len(known))
	for _, k := range known {
		if m, ok := raw[k]; ok {
			modelled[k] = m
			delete(raw, k)
		}
	}
	b, err := json.Marshal(modelled)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return nil, err
	}

	enc, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var kept map[string]json.RawMessage
	if err := json.Unmarshal(enc, &kept); err != nil {
		return nil, err
	}
	for k, m := range modelled {
		if _, ok := kept[k]; !ok {
			raw[k] = m
		}
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// mergeExtra adds the members of extra that base does not already define.
// base must be an encoded JSON object.
func mergeExtra(base []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return base, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(base, &obj); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := obj[k]; !ok {
			obj[k] = v
		}
	}
	return json.Marshal(obj)
}
