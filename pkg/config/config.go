// Package config loads the cluster throttle configuration (spec §6) from
// disk with viper, sanity-checks the raw document with ajson before
// binding it, and can hand back a JSON Schema for the config surface for
// editors and validators.
//
// Grounded on the teacher's pkg/schema/json.go (ajson.Unmarshal over a raw
// document before trusting it, jsonschema.Reflector to derive a schema from
// a Go type) even though the teacher itself never wires spf13/viper to any
// config file — this is the first real caller of that dependency.
package config

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/spyzhov/ajson"
	"github.com/swaggest/jsonschema-go"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Beaver-Company/helix/pkg/model"
)

// recognizedKeys are the config document keys the pipeline itself
// understands; everything else survives round-tripping through Extra.
var recognizedKeys = map[string]struct{}{
	"clustername": {},
	"throttle":    {},
}

// Load reads a cluster config document from path (any format viper
// supports by extension: yaml, json, toml). After viper has read the file,
// it re-marshals the settings to JSON and pre-validates them with ajson to
// reject documents that are not a JSON-shaped object, then unmarshals into
// a model.ClusterConfig.
func Load(path string) (model.ClusterConfig, error) {
	var cfg model.ClusterConfig

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, errors.Wrap(err, "read config file")
	}

	raw, err := json.Marshal(v.AllSettings())
	if err != nil {
		return cfg, errors.Wrap(err, "re-marshal config for validation")
	}
	if err := validateDocument(raw); err != nil {
		return cfg, errors.Wrap(err, "validate config document")
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "unmarshal config")
	}

	extra, err := unrecognizedFields(v.AllSettings())
	if err != nil {
		return cfg, errors.Wrap(err, "capture unrecognized config fields")
	}
	cfg.Extra = extra

	return cfg, nil
}

// unrecognizedFields packs every key of settings that Load doesn't bind
// into a typed field into a structpb.Struct, so a deployment-specific key
// survives Load/round-trip even though model.ClusterConfig never names it.
func unrecognizedFields(settings map[string]interface{}) (*structpb.Struct, error) {
	rest := make(map[string]interface{}, len(settings))
	for k, v := range settings {
		if _, ok := recognizedKeys[k]; ok {
			continue
		}
		rest[k] = v
	}
	if len(rest) == 0 {
		return nil, nil
	}
	return structpb.NewStruct(rest)
}

// validateDocument runs a loose structural pass over raw with ajson: it
// must parse as a JSON object, and if a throttle key is present it must
// itself be an object. This catches obviously malformed documents (a bare
// scalar, a list at the root) before the stricter viper/mapstructure
// unmarshal, whose errors are harder to act on.
func validateDocument(raw []byte) error {
	root, err := ajson.Unmarshal(raw)
	if err != nil {
		return errors.Wrap(err, "parse document")
	}
	if !root.IsObject() {
		return fmt.Errorf("config document must be a JSON object")
	}
	throttleNode, err := root.GetKey("throttle")
	if err != nil {
		// absent throttle key is fine, defaults apply.
		return nil
	}
	if throttleNode != nil && !throttleNode.IsObject() {
		return fmt.Errorf("throttle key must be an object")
	}
	return nil
}

// Schema reflects model.ClusterConfig into a JSON Schema document,
// grounded on the teacher's pkg/schema.CreateSchema use of
// jsonschema.Reflector.
func Schema() (jsonschema.Schema, error) {
	r := jsonschema.Reflector{}
	schema, err := r.Reflect(model.ClusterConfig{})
	if err != nil {
		return jsonschema.Schema{}, errors.Wrap(err, "reflect schema")
	}
	return schema, nil
}

// MarshalSchema returns the indented JSON encoding of Schema(), for
// writing to a file or printing from the CLI.
func MarshalSchema() ([]byte, error) {
	schema, err := Schema()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(schema, "", "  ")
}
