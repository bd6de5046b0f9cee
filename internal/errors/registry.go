package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Upload outcomes (E001-E019)

	"E001": {
		Category: CategoryUpload,
		Message:  "No files selected to upload",
		Detail:   "Submit was called before any file was selected in the picker.",
	},
	"E002": {
		Category: CategoryUpload,
		Message:  "No upload URL specified",
		Detail:   "The widget has no endpoint URL configured.",
	},
	"E003": {
		Category: CategoryUpload,
		Message:  "Files could not be uploaded",
		Detail:   "The endpoint answered with a status other than 200, or the request could not be sent.",
	},
	"E004": {
		Category: CategoryUpload,
		Message:  "Failed to encode upload payload",
		Detail:   "A selected file could not be read while building the multipart body.",
	},

	// Picker errors (E040-E059)

	"E040": {
		Category: CategoryPicker,
		Message:  "File selection failed",
		Detail:   "The file source could not list or open the requested files.",
	},
	"E041": {
		Category: CategoryPicker,
		Message:  "Selected file is too large",
		Detail:   "A selected file exceeds the configured maximum size.",
	},

	// Config errors (E120-E149)

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Configuration files must end in .json, .toml, .yaml or .yml.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No uploadkit configuration file was found.",
	},

	// CLI errors (E160-E179)

	"E160": {
		Category: CategoryCLI,
		Message:  "Invalid flag value",
		Detail:   "A command-line flag could not be parsed.",
	},
	"E161": {
		Category: CategoryCLI,
		Message:  "Upload did not succeed",
		Detail:   "The upload finished with a non-success outcome.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
