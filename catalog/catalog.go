// Package catalog holds the documented endpoint set and renders its
// human-readable documentation.
package catalog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aiweb/codec"

	"github.com/spf13/viper"
)

var ErrUnknownEndpoint = errors.New("unknown endpoint")

// Example is one titled sample response shown in the docs.
type Example struct {
	Title string `mapstructure:"title" json:"title"`
	Data  any    `mapstructure:"data" json:"data"`
}

// ErrorCode documents a status code the endpoint may answer with.
type ErrorCode struct {
	Code int    `mapstructure:"code" json:"code"`
	Msg  string `mapstructure:"msg" json:"msg"`
}

// Endpoint is the declarative metadata for one backend operation.
// Intro is trusted HTML and is rendered verbatim.
type Endpoint struct {
	ID          string           `mapstructure:"id" json:"id"`
	Name        string           `mapstructure:"name" json:"name"`
	Description string           `mapstructure:"description" json:"description"`
	Intro       string           `mapstructure:"intro" json:"intro,omitempty"`
	Path        string           `mapstructure:"path" json:"path"`
	Method      string           `mapstructure:"method" json:"method"`
	Inputs      []codec.Modality `mapstructure:"inputs" json:"inputs"`
	Request     any              `mapstructure:"request" json:"request,omitempty"`
	Responses   []Example        `mapstructure:"responses" json:"responses,omitempty"`
	Errors      []ErrorCode      `mapstructure:"errors" json:"errors,omitempty"`
	// Schema is an optional JSON schema for the json input. Mismatches are
	// reported as warnings only.
	Schema string `mapstructure:"schema" json:"schema,omitempty"`
}

// Payload builds the request for this endpoint from user input.
func (e Endpoint) Payload(text, rawJSON string, files []codec.File) codec.RequestPayload {
	return codec.RequestPayload{
		Endpoint:   e.Path,
		Method:     e.Method,
		InputTypes: e.Inputs,
		Text:       text,
		JSON:       rawJSON,
		Files:      files,
	}
}

func (e Endpoint) validate() error {
	if e.ID == "" {
		return fmt.Errorf("endpoint %q: missing id", e.Path)
	}
	if e.Path == "" {
		return fmt.Errorf("endpoint %s: missing path", e.ID)
	}
	if e.Method != http.MethodGet && e.Method != http.MethodPost {
		return fmt.Errorf("endpoint %s: unsupported method %q", e.ID, e.Method)
	}
	for _, m := range e.Inputs {
		if !m.Valid() {
			return fmt.Errorf("endpoint %s: unknown input type %q", e.ID, m)
		}
	}
	return nil
}

// Catalog is an ordered, id-indexed endpoint set. It is read-only once built.
type Catalog struct {
	endpoints []Endpoint
	byID      map[string]int
}

// New builds a catalog, rejecting duplicate ids and malformed entries.
func New(endpoints ...Endpoint) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(endpoints))}
	for _, e := range endpoints {
		if err := e.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate endpoint id %s", e.ID)
		}
		c.byID[e.ID] = len(c.endpoints)
		c.endpoints = append(c.endpoints, e)
	}
	return c, nil
}

// Default returns the built-in endpoint set.
func Default() *Catalog {
	c, err := New(builtin()...)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns the endpoints in display order.
func (c *Catalog) List() []Endpoint {
	out := make([]Endpoint, len(c.endpoints))
	copy(out, c.endpoints)
	return out
}

func (c *Catalog) Lookup(id string) (Endpoint, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Endpoint{}, false
	}
	return c.endpoints[i], true
}

// Get is Lookup returning ErrUnknownEndpoint.
func (c *Catalog) Get(id string) (Endpoint, error) {
	e, ok := c.Lookup(id)
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %s", ErrUnknownEndpoint, id)
	}
	return e, nil
}

// Merge returns a new catalog where each override replaces the endpoint with
// the same id, or is appended when the id is new.
func (c *Catalog) Merge(overrides []Endpoint) (*Catalog, error) {
	merged := c.List()
	for _, o := range overrides {
		if i, ok := c.byID[o.ID]; ok {
			merged[i] = o
			continue
		}
		merged = append(merged, o)
	}
	return New(merged...)
}

// FromViper loads the "endpoints" key on top of the built-in set.
func FromViper(v *viper.Viper) (*Catalog, error) {
	var overrides []Endpoint
	if err := v.UnmarshalKey("endpoints", &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode endpoints: %w", err)
	}
	return Default().Merge(overrides)
}
