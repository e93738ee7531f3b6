package hclconfig

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// File is the decoded settings file. Pointer fields are nil when the
// attribute or block was not written.
type File struct {
	LogLevel  *string  `hcl:"log_level,optional"`
	LogFormat *string  `hcl:"log_format,optional"`
	Strict    *bool    `hcl:"strict,optional"`
	Screen    *Screen  `hcl:"screen,block"`
	Publish   *Publish `hcl:"publish,block"`
}

// Screen holds the size used by a bare "screen" command.
type Screen struct {
	Width  *float64 `hcl:"width,optional"`
	Height *float64 `hcl:"height,optional"`
}

// Publish configures the socket.io publisher.
type Publish struct {
	URL                string  `hcl:"url"`
	Namespace          *string `hcl:"namespace,optional"`
	Event              *string `hcl:"event,optional"`
	ReplyEvent         *string `hcl:"reply_event,optional"`
	Timeout            *string `hcl:"timeout,optional"`
	InsecureSkipVerify *bool   `hcl:"insecure_skip_verify,optional"`
}

// Load parses and decodes the settings file at path.
func Load(path string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}

	var f File
	diags = gohcl.DecodeBody(hclFile.Body, nil, &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}
	if f.Screen != nil {
		if (f.Screen.Width != nil && *f.Screen.Width <= 0) || (f.Screen.Height != nil && *f.Screen.Height <= 0) {
			return nil, fmt.Errorf("settings file %s: screen width and height must be positive", path)
		}
	}
	return &f, nil
}
