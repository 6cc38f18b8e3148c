// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the working directory and in
// the user config directory.
const FileName = "ecsanywhere.yaml"

// ErrNoConfig is returned when no config file could be located.
var ErrNoConfig = errors.New("no config file found in standard locations")

// Type is the in-memory representation of the loaded configuration.
//
// Namespace is an optional dotted prefix. When set, lookups try
// Namespace+"."+key before the bare key, so a command can carry its own
// overrides ("synth.outdir") while sharing globals ("outdir").
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global configuration instance.
var Config Type

func init() {
	_, _ = Load()
}

// Load locates and parses the YAML configuration and replaces the global
// Config. An empty document is valid and yields an empty Data map.
func Load() (Type, error) {
	path, err := File()
	if err != nil {
		return Type{}, err
	}
	return LoadFile(path)
}

// LoadFile parses the YAML document at path and replaces the global Config.
func LoadFile(path string) (Type, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	data := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{Source: path, Namespace: Config.Namespace, Data: data}
	return Config, nil
}

// File returns the path of the config file to use. ECSA_CFG_FILE wins and
// must point at an existing regular file. Otherwise ./ecsanywhere.yaml and
// then os.UserConfigDir()/ecsanywhere.yaml are tried.
func File() (string, error) {
	if p := os.Getenv("ECSA_CFG_FILE"); p != "" {
		fi, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("config file not found at ECSA_CFG_FILE path: %s", p)
		}
		if fi.IsDir() {
			return "", fmt.Errorf("ECSA_CFG_FILE points to a directory: %s", p)
		}
		log.Debugf("using config file from ECSA_CFG_FILE: %s", p)
		return p, nil
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, FileName))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, FileName))
	}

	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			log.Debugf("using config file: %s", c)
			return c, nil
		}
	}

	return "", ErrNoConfig
}

// GetString returns the string at the dotted key. A single default is
// returned when the key is missing. A present non-string value is an error.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: value is not a string", key)
	}
	return s, nil
}

// GetInt returns the integer at the dotted key. YAML numbers decode as int or
// float64 depending on content; floats are truncated.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("%s: value is not an int", key)
}

// GetBool returns the boolean at the dotted key.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("%s: value is not a bool", key)
	}
	return b, nil
}

// GetStringSlice returns the string list at the dotted key.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	items, ok := val.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: value is not a slice", key)
	}

	result := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: slice element is not a string", key, i)
		}
		result[i] = s
	}
	return result, nil
}

// GetMap returns the mapping at the dotted key.
func GetMap(key string) (map[string]interface{}, error) {
	val, err := Config.get(key)
	if err != nil {
		return nil, err
	}

	m, ok := val.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: value is not a map", key)
	}
	return m, nil
}

// get walks the tree along the dotted key, trying the namespaced key first.
func (cfg *Type) get(key string) (any, error) {
	candidates := []string{key}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + key, key}
	}

	for _, c := range candidates {
		if v, ok := lookup(cfg.Data, strings.Split(c, ".")); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no valid path found among: %v", candidates)
}

func lookup(node any, path []string) (any, bool) {
	for _, p := range path {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if node, ok = m[p]; !ok {
			return nil, false
		}
	}
	return node, true
}
