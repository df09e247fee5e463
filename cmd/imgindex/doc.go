// Command imgindex writes an index of every gallery image under a directory
// tree.
//
// Usage:
//
//	imgindex [flags] <root_directory_to_search> <output_file>
//
// The default output is a JSON array of {"path", "mtime"} objects sorted
// earliest first, with absolute paths and fractional Unix seconds:
//
//	[
//	    {
//	        "path": "/photos/2019/IMG_0001.jpg",
//	        "mtime": 1546300800.25
//	    }
//	]
//
// With --format sqlite the same records go to an SQLite database instead
// (see package database). --dimensions adds "width" and "height" read from
// each image header. Unreadable files are reported and skipped. Progress is
// printed every 1000 images, redrawn in place when attached to a terminal.
//
// IMGINDEX_WORKERS pins the number of stat workers when --workers is unset.
package main
