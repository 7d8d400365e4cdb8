// Package svc provides the service layer of flutterkit.
//
// Subpackages:
//   - executor: child process execution, with a pseudo-terminal variant for prompting tools
//   - patcher: generated flavor, environment and Android build artifacts
//   - provisioner: the eleven-step project provisioning pipeline
//   - scanner: discovery of Flutter projects in a directory
//   - inspector: project metadata reports
//   - mcp: Model Context Protocol server exposing the above as tools
package svc
