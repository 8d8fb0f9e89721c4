package config

// Config file names, in lookup order.
const (
	ConfigFileName    = "sqltint.yaml"
	ConfigFileNameAlt = "sqltint.yml"
)

// defaults feeds the koanf confmap provider before file and env layers.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"highlight.keywords":   true,
		"highlight.parameters": true,
		"highlight.databases":  true,
		"highlight.schemas":    true,
		"highlight.tables":     true,
		"highlight.columns":    true,
		"highlight.unresolved": false,
		"no_color":             false,
		"verbose":              false,
	}
}
