package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "formbuilder-form"
	ClassField   ChromeClass = "formbuilder-field"
	ClassActions ChromeClass = "formbuilder-actions"
	ClassError   ChromeClass = "formbuilder-error"
	ClassNotice  ChromeClass = "formbuilder-notice"
	ClassPreview ChromeClass = "formbuilder-preview"
	ClassDetails ChromeClass = "formbuilder-details"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":    string(ClassForm),
		"field":   string(ClassField),
		"actions": string(ClassActions),
		"error":   string(ClassError),
		"notice":  string(ClassNotice),
		"preview": string(ClassPreview),
		"details": string(ClassDetails),
	}
}
