// Package update implements the check stage.
//
// A pass loads version.json (falling back to per-region defaults), runs every
// enabled region adapter concurrently, and compares each discovered
// {version, cdnAddr} with the stored one. Hash-only regions are also compared on
// their latest masterdata hash. When anything changed, version.json and
// changed.json are each written once; otherwise nothing is written.
//
// Probed versions never move backwards: a search that ends below the stored
// version keeps the stored one.
package update
