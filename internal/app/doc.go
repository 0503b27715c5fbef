// Package app wires assetgate together: it loads the gate configuration,
// builds the logger and the build environment, registers every pipeline as
// a pre-build hook and runs one build cycle over the gated targets.
package app
