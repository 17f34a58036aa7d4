package internal

// FilterPatch keeps only the allow-listed keys of a partial update body.
// Unknown keys are dropped silently; the caller decides what an empty result
// means.
func FilterPatch(updates map[string]interface{}, allowed ...string) map[string]interface{} {
	filtered := make(map[string]interface{}, len(updates))
	for _, field := range allowed {
		if value, ok := updates[field]; ok {
			filtered[field] = value
		}
	}
	return filtered
}
