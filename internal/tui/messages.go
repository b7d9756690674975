package tui

// ExportedMsg reports where a summary document was written
type ExportedMsg struct {
	Path string
	Err  error
}
