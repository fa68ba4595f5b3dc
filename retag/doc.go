// Package retag re-runs tagging over every stored grant, typically after the
// vocabulary or the refinement model has changed.
//
// This package supports batch processing of stored grants, progress tracking,
// and rebuilding the search index once the retagged collection is written
// back to storage.
package retag
