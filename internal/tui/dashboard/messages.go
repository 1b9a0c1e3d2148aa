package dashboard

// ViewMode determines which screen to render
type ViewMode int

const (
	ViewCatalog ViewMode = iota
	ViewFilters
	ViewHelp
)

// startMsg triggers the first load once the program is running.
type startMsg struct{}

// ClearStatusMsg hides the status line if it is still the one identified by Seq.
type ClearStatusMsg struct {
	Seq int
}

// ClearErrorMsg hides the error banner if it still shows error Seq.
type ClearErrorMsg struct {
	Seq int
}
