package tools

import "fmt"

func GetStringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultVal
}

func GetIntParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return defaultVal
}

func GetBoolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

func GetStringSliceParam(params map[string]interface{}, key string) []string {
	v, ok := params[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// validateParams checks params against spec's declared schema: every
// required property must be present, and every supplied key must be a
// declared property — unknown fields are rejected rather than ignored.
func validateParams(spec ToolSpec, params map[string]interface{}) error {
	schema := spec.Parameters()

	props, _ := schema["properties"].(map[string]interface{})
	for key := range params {
		if _, ok := props[key]; !ok {
			return fmt.Errorf("unknown parameter %q for tool %s", key, spec.Name())
		}
	}

	required, _ := schema["required"].([]string)
	for _, key := range required {
		if _, ok := params[key]; !ok {
			return fmt.Errorf("missing required parameter %q for tool %s", key, spec.Name())
		}
	}

	return nil
}
