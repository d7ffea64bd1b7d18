// Package syncer is the supervisor that orchestrates pkg/rsync across a
// pair of vaults: it walks a source vault's plugin directory, diffs each
// file against its counterpart in every destination vault, and applies the
// resulting delta. Its looping and concurrency behavior are a deliberate
// design choice documented in DESIGN.md, not a derived requirement — the
// engine itself (pkg/rsync) has no opinion about orchestration.
package syncer
