package main

// Accessors for worker response payloads. JSON decoding hands back
// map[string]any with float64 numbers, so every read goes through a
// type switch.

func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func int64Field(data map[string]any, key string) int64 {
	if data == nil {
		return 0
	}
	switch v := data[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func float64Field(data map[string]any, key string) float64 {
	if data == nil {
		return 0
	}
	switch v := data[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func sliceField(data map[string]any, key string) []any {
	if data == nil {
		return nil
	}
	if s, ok := data[key].([]any); ok {
		return s
	}
	return nil
}

func mapItem(value any) map[string]any {
	if m, ok := value.(map[string]any); ok {
		return m
	}
	return nil
}
