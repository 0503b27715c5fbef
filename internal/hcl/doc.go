// Package hcl provides the HCL implementation of config.Loader. It discovers
// *.hcl gate files, evaluates their templates against the project layout and
// the process environment, and translates the blocks into a config.Model.
//
// Evaluation happens in two passes. The project block is evaluated first,
// with only `env` in scope for project_dir and `env` plus `project_dir` in
// scope for build_dir. Every other block is then evaluated with
// `project_dir`, `build_dir` and `env` in scope.
package hcl
