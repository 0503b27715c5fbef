// Package config defines the format-agnostic configuration model for
// assetgate, along with the Loader interface that concrete formats (HCL)
// implement.
//
// The Model is the single source of truth for the app package: it names the
// project layout, the pipelines to run as pre-build hooks, the optional
// compile step that produces the gated target, and the optional notifier.
package config
