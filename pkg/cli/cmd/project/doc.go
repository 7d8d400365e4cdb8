// Package project provides the create, list and info commands.
package project
