// Package sqlite persists materialized grid products. A snapshot row holds
// the grid shape, its edges as JSON and the count/mean arrays as
// gob+gzip-compressed blobs, so a gridded granule can be reloaded without
// re-accumulating the source swaths.
package sqlite
