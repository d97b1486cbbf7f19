package prooftable

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadError reports a table source that could not be reached or parsed
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load proof table from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// maxSourceSize bounds how much of a remote table source is read
const maxSourceSize = 8 << 20

// Load reads a table from YAML. The document must be a single mapping of proof key
// to conversion factor:
//
//	"80": 0.10093
//	"80.1": 0.10105
//
// JSON objects are valid YAML and load the same way.
func Load(r io.Reader) (*Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("proof table source is empty")
		}
		return nil, fmt.Errorf("failed to decode proof table: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("proof table must be a mapping of proof to factor (line %d)", root.Line)
	}

	entries := make(map[string]float64, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode || valueNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: proof table entries must be scalars", keyNode.Line)
		}
		if _, dup := entries[keyNode.Value]; dup {
			return nil, fmt.Errorf("line %d: duplicate proof key %q", keyNode.Line, keyNode.Value)
		}
		factor, err := strconv.ParseFloat(strings.TrimSpace(valueNode.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: conversion factor for %q is not a number: %q", valueNode.Line, keyNode.Value, valueNode.Value)
		}
		entries[keyNode.Value] = factor
	}

	return New(entries)
}

// Open loads a table from a local file path or an http(s) URL. Remote fetches are
// bounded by ctx. Every failure is returned as a *LoadError.
func Open(ctx context.Context, source string, client *http.Client) (*Table, error) {
	if source == "" {
		return nil, &LoadError{Source: "(unset)", Err: fmt.Errorf("no proof table source configured")}
	}

	var (
		table *Table
		err   error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		table, err = fetch(ctx, source, client)
	} else {
		table, err = loadFile(source)
	}
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return table, nil
}

func loadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

func fetch(ctx context.Context, url string, client *http.Client) (*Table, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/yaml, application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return Load(io.LimitReader(resp.Body, maxSourceSize))
}
