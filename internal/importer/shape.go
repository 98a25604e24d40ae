package importer

// containerKeys are the recognized wrapper keys, in precedence order. "data"
// may hold the array directly or nest it under "items"; the rest hold arrays.
var containerKeys = []string{"data", "results", "clientes", "clients"}

// extractor is one shape-sniffing strategy: it either claims the raw value
// and returns its candidates, or passes.
type extractor func(raw any) ([]any, bool)

// extractors are tried in order; the first one that claims the input wins.
// The whole-object fallback comes last so a wrapper object matching none of
// the recognized keys still yields itself as the single candidate.
var extractors = []extractor{
	extractArray,
	extractContainers,
	extractObject,
}

// ResolveShape discovers the record-shaped candidates inside an arbitrary
// parsed JSON value. It does no field-level normalization; type coercion is
// the normalizers' job. Primitives and null yield an empty sequence.
func ResolveShape(raw any) []any {
	for _, extract := range extractors {
		if candidates, ok := extract(raw); ok {
			return candidates
		}
	}
	return nil
}

func extractArray(raw any) ([]any, bool) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	return dropNulls(arr), true
}

func extractContainers(raw any) ([]any, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	var candidates []any
	matched := false
	for _, key := range containerKeys {
		value, present := obj[key]
		if !present {
			continue
		}
		if arr, ok := containerArray(key, value); ok {
			candidates = append(candidates, dropNulls(arr)...)
			matched = true
		}
	}
	return candidates, matched
}

// containerArray unwraps one recognized container value to its array form.
func containerArray(key string, value any) ([]any, bool) {
	if arr, ok := value.([]any); ok {
		return arr, true
	}
	if key != "data" {
		return nil, false
	}
	// The primary key tolerates one more level of wrapping: {data: {items: [...]}}
	if nested, ok := value.(map[string]any); ok {
		if items, ok := nested["items"].([]any); ok {
			return items, true
		}
	}
	return nil, false
}

func extractObject(raw any) ([]any, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	if len(obj) == 0 {
		return nil, true
	}
	return []any{obj}, true
}

func dropNulls(arr []any) []any {
	candidates := make([]any, 0, len(arr))
	for _, item := range arr {
		if item == nil {
			continue
		}
		candidates = append(candidates, item)
	}
	return candidates
}
