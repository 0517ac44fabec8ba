// Package migrate moves a project from a legacy linter or formatter to the
// oxc tools. One Engine drives both migrations; what differs between them
// lives in the toolset policy tables.
//
// The manifest is written once, after every question has been answered, so a
// cancelled run leaves package.json untouched. Legacy config files are
// unlinked only after that write.
package migrate
