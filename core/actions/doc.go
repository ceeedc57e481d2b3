// Package actions writes step outputs consumed by the CI workflow that schedules
// the monitor.
//
// The check stage sets "success"; the download stage sets "title" and "diff".
// When github.output (GITHUB_OUTPUT) points at a file, outputs are appended there
// as heredoc blocks through go-githubactions. Otherwise they are printed as
// workflow commands.
package actions
