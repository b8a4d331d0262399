package config

import (
	"errors"
	"fmt"
	"strings"
)

var validModes = map[string]bool{
	"fast-copy":          true,
	"accurate-transcode": true,
	"clean-transcode":    true,
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.MediaRoot) == "" {
		return errors.New("paths.media_root must be set")
	}
	if strings.TrimSpace(c.Paths.OutputRoot) == "" {
		return errors.New("paths.output_root must be set")
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if c.Extraction.BufferMS < 0 {
		return errors.New("extraction.buffer_ms must not be negative")
	}
	if !validModes[c.Extraction.Mode] {
		return fmt.Errorf("extraction.mode must be one of fast-copy, accurate-transcode, clean-transcode (got %q)", c.Extraction.Mode)
	}
	if strings.ContainsAny(c.Extraction.Container, "./\\") {
		return fmt.Errorf("extraction.container must be a bare extension (got %q)", c.Extraction.Container)
	}
	if c.Extraction.HWAccel != "" && c.Extraction.Mode != "accurate-transcode" {
		return errors.New("extraction.hw_accel requires extraction.mode = \"accurate-transcode\"")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
