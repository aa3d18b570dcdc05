package config

// DefaultSheetsBaseURL is the Google Sheets API v4 endpoint.
const DefaultSheetsBaseURL = "https://sheets.googleapis.com/v4"

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"google_api_key":     "",
		"sheets_base_url":    DefaultSheetsBaseURL,
		"request_timeout":    30,
		"configs_dir":        "configs",
		"namespace_map_file": "config_metadata/config_namespace_map.json",
		"log_level":          "info",
		"log_json":           false,
		"show_progress":      true,
	}
}

// GetDefaultConfigTemplate returns a commented YAML configuration holding the
// default values.
func GetDefaultConfigTemplate() string {
	return `# nbcommunities configuration

# Google Sheets access
# The API key is better supplied through COMMUNITIES_GOOGLE_API_KEY.
google_api_key: ""
sheets_base_url: "https://sheets.googleapis.com/v4"
request_timeout: 30          # seconds per request (1-600)

# Repository layout
configs_dir: "configs"
namespace_map_file: "config_metadata/config_namespace_map.json"

# Output
log_level: "info"            # debug, info, warn, error
log_json: false
show_progress: true
`
}
