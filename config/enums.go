package config

// OutputFormat selects where rendered styles are written.
type OutputFormat string

const (
	OutputFormatDocument OutputFormat = "document"
	OutputFormatCSS      OutputFormat = "css"
	OutputFormatSQLite   OutputFormat = "sqlite"
)

// OutputFormatNames lists supported formats.
func OutputFormatNames() []string {
	return []string{string(OutputFormatDocument), string(OutputFormatCSS), string(OutputFormatSQLite)}
}

// Ext returns file extension used for the format.
func (o OutputFormat) Ext() string {
	switch o {
	case OutputFormatDocument:
		return ".xhtml"
	case OutputFormatCSS:
		return ".css"
	case OutputFormatSQLite:
		return ".db"
	default:
		// this should never happen, validated on load
		panic("unsupported output format requested")
	}
}
