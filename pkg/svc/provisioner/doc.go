// Package provisioner creates a Flutter project from a template repository.
//
// A Pipeline runs eleven fixed steps in order: it clones and renames the template,
// initialises version control, fetches dependencies, generates localisations and build
// flavors, and patches the generated files. Every step either runs or, in a dry run, only
// describes what it would do. The first failure stops the run; the returned *Error
// carries the log accumulated so far.
package provisioner
