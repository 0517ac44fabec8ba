// Package platform provides the filesystem probe used by every command:
// existence checks, tolerant JSON reads, durable text writes that create parent
// directories, and file removal. It also hides the few OS differences the CLI
// cares about (permission bits on Windows).
package platform
