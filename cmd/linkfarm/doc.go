// Command linkfarm fills a flat directory with symlinks to the images found
// under a source tree, ready to be served with "imgserve --flat".
//
// Usage:
//
//	linkfarm [flags] <root_directory_to_search>
//
// Links go to ./images unless --dest says otherwise, and at most 2000 are
// created (--limit). Names already present in the destination are skipped,
// so running the tool again only adds what is new. On Linux every link
// carries its target's access and modification times.
package main
