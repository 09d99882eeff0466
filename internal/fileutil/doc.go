// Package fileutil holds small file helpers shared by the writers: BOM-aware
// text reads and atomic replace-by-rename.
package fileutil
