/*
Package confine keeps every filesystem path the server touches inside a single
root directory.

# Resolution

A Resolver is built once at startup from the configured root and then shared
by all requests:

	res, err := confine.New("/srv/photos", confine.Options{})

	path, err := res.Resolve("2024/summer")       // /srv/photos/2024/summer
	_, err = res.Resolve("../../etc/passwd")      // errors.Is(err, confine.ErrOutsideRoot)
	_, err = res.Resolve("/etc/passwd")           // errors.Is(err, confine.ErrOutsideRoot)
	path, err = res.Resolve("/srv/photos/2024")   // unchanged, resolution is idempotent

The check is lexical: the joined path is cleaned and must equal the root or
start with the root followed by a separator, so "/srv/photos-private" is not
inside "/srv/photos".

# Existence

Dir and File add the existence check that follows confinement and report
ErrNotFound for paths that are confined but missing or of the wrong kind.

# Symlinks

By default symlinks inside the root are followed wherever they point; a flat
symlink farm depends on this. Options.RejectSymlinkEscape canonicalizes each
resolved path and rejects links whose targets leave the root.
*/
package confine
