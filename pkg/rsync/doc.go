// Package rsync provides a content-addressed delta engine for mirroring
// plugin files between vaults on a single machine. Given a base (the
// destination copy of a file) and a new sequence (the source copy), the
// package computes a block signature for the base, scans the new sequence
// against that signature with a rolling hash, and emits an ordered delta of
// Copy and Insert operations. Applying the delta against the base
// reconstructs the new sequence.
//
// The algorithm follows the rsync technical report
// (https://rsync.samba.org/tech_report) with two substitutions: the weak
// rolling hash is a BuzHash-style cyclic polynomial rather than the Adler-32
// variant used by rsync itself, and the strong verification hash is the
// non-cryptographic xxh3-64 rather than MD4/MD5.
package rsync
