package config

const (
	// MaxNameLength is the maximum length for folder and ad names.
	// Limited to 100 to fit in VARCHAR(100) and keep names displayable
	// in the tree-browsing page.
	MaxNameLength = 100
)
