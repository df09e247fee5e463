/*
Package gallery turns a directory into gallery pages.

# Listing

Lister.ListImages scans one directory (non-recursively) on every call and
keeps entries that

  - are regular files, or symlinks whose target is a regular file,
  - carry a recognized image extension (see mediatypes.IsGalleryImage),
  - do not start with the "._" metadata prefix.

A directory that is missing or unreadable produces an empty listing. A file
whose timestamp cannot be read is kept with HasModTime unset; it sorts after
every timestamped image whichever date direction is requested.

Lister.ListSubdirs returns the visible subdirectories with root-relative paths.

# Sorting

	name: case-insensitive, ascending unless "desc" is requested
	date: modification time, direction from SortDefaults (newest first by default)

Sorting is stable so equal keys keep scan order.

# Views

BuildView slices a listing with a pagination.Window and produces a View with
tiles, captions, subdirectory links and URL helpers for templates. It does no
I/O of its own.
*/
package gallery
