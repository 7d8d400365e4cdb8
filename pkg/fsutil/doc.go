// Package fsutil provides utilities for filesystem operations.
//
// Key functionality:
//   - File writing: WriteFile (whole-file replace via temp file and rename)
//   - File reading: ReadFileIfExists
//   - Path operations: ExpandHomePath, Exists, IsDir
package fsutil
