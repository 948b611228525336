package email

// PreviewData holds sample data for every template, keyed by template name.
// It is used to render previews and to check that every template executes.
var PreviewData = map[Template]map[string]string{
	TemplateMemoryPublished: {
		"UserFirstName": "Diego",
		"Excerpt":       "Começei a programar em 2014, com um curso de HTML e CSS...",
		"MemoryURL":     "http://localhost:3000/memories/0b5c3a1e-8d7f-4a4e-9a35-5d5a4d1f2c11",
	},
}
