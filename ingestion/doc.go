// Package ingestion provides pipeline orchestration for tagging and
// committing batches of grants.
//
// The Pipeline type manages the batch workflow:
//   - Validating every input before any work is done
//   - Tagging grants concurrently on a worker pool
//   - Appending the tagged grants to storage, then adding them to the index
//
// A batch is all-or-nothing with respect to validation. Storage and index
// updates for one batch are serialized against other batches so the index
// order matches the storage order.
package ingestion
