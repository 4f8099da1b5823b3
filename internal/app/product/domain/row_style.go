package domain

// RowStyle is the style hint a display surface applies to a grid row.
type RowStyle string

const (
	StyleClean   RowStyle = "clean"
	StyleChanged RowStyle = "changed"
	StyleCreated RowStyle = "created"
	StyleDeleted RowStyle = "deleted"
)

// RowFlags are the row states that drive the style hint.
type RowFlags struct {
	Deleted bool
	Created bool
	Changed bool
}

// StyleFor maps row flags to a style. Deleted wins over created, created over changed.
func StyleFor(flags RowFlags) RowStyle {
	switch {
	case flags.Deleted:
		return StyleDeleted
	case flags.Created:
		return StyleCreated
	case flags.Changed:
		return StyleChanged
	default:
		return StyleClean
	}
}

// IsPending reports whether the style marks an uncommitted row.
func (s RowStyle) IsPending() bool {
	return s != StyleClean
}
