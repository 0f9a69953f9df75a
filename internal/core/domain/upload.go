package domain

// UploadType is the declared file type of a local upload. It selects
// the excerpt style used when the document appears in search results.
type UploadType string

const (
	UploadText     UploadType = "text"
	UploadMarkdown UploadType = "markdown"
)

// Valid reports whether the upload type is one of the supported kinds.
func (t UploadType) Valid() bool {
	return t == UploadText || t == UploadMarkdown
}

// UploadTypeForExtension guesses an upload type from a file extension.
func UploadTypeForExtension(ext string) UploadType {
	switch ext {
	case ".md", ".markdown":
		return UploadMarkdown
	default:
		return UploadText
	}
}
