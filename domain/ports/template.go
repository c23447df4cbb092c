package ports

// TemplateEngine renders descriptor bytes against server-supplied values
// before parsing.
type TemplateEngine interface {
	Render(raw []byte, values map[string]interface{}) ([]byte, error)
}
