// Package patcher produces the files the provisioner writes into a new project.
//
// Every function here is pure: it takes the project name, organisation or an existing
// file's content and returns the new content. Writing is left to the caller.
//
// The build script patch is expressed as a list of [Edit] values applied by [Apply].
// Each edit locates its block by a "name {" anchor and spans to the matching closing
// brace; an edit whose anchor is missing fails with [ErrAnchorNotFound] rather than
// silently leaving the file unchanged.
package patcher
