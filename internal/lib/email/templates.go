package email

// Template names an embedded templates/<name>.html file.
type Template string

const (
	TemplateMemoryPublished Template = "memory_published"
)
