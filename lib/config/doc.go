// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration shared by nwg-pulse,
// lycris, and lycris-tiles.
//
// Every field has a default matching the stock desktop setup, so the
// binaries run without any file.
// A file is selected by the --config flag, else by the
// VISUALIZER_CONFIG environment variable; values present in the file
// replace defaults field by field. Environment variables never
// override individual values.
//
// The audio channel layout is explicit configuration. Producers
// disagree on channel order and send no schema marker, so nothing is
// inferred from the payload.
//
// Path fields expand ${HOME} and ${VAR:-default}.
package config
