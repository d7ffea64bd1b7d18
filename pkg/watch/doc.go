// Package watch translates raw filesystem events into the small signal
// vocabulary the supervisor needs: "the vault registry changed" and "this
// vault's plugin directory changed." It collapses fsnotify's raw event
// stream rather than forwarding every event kind, since the sync engine
// itself has no suspension points related to watching — it only needs to
// know when to re-run.
package watch
