// Package vault reads Obsidian's vault registry file: the small JSON
// document the application maintains listing every vault it knows about,
// each with a last-opened timestamp and whether it's currently open. This
// package is a thin config reader by design — discovery of which vaults
// exist is external to the sync engine itself, so the only invariant here is
// "parse the file, report an error if it's missing or malformed."
package vault
