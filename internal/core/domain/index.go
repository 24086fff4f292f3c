package domain

// IndexConfig holds package-index settings handed to the resolver and
// installer. IndexURLs take priority over the default index, in order.
type IndexConfig struct {
	// DefaultIndexURL overrides the default package index.
	DefaultIndexURL string

	// IndexURLs are additional indexes, checked in order before the default.
	IndexURLs []string
}
