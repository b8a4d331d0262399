// Package catalog keeps a local SQLite record of discovered media and
// completed extraction runs. The catalog is optional: when disabled the
// pipeline works directly against the filesystem, and when enabled it lets
// later runs resolve media by logical identifier and browse run history.
package catalog
