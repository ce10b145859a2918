// Package config provides configuration structures and utilities for SubTrace.
// It defines the run options for the reconnaissance pipeline, the external
// tool path overrides, and the optional .subtrace YAML file loader.
package config
