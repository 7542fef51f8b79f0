// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONOutput is embedded in params structs of commands that can print
// machine-readable output.
type JSONOutput struct {
	OutputJSON bool `json:"-" flag:"json" desc:"print output as JSON"`
}

// WriteJSON writes value to w as indented JSON with a trailing newline.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
