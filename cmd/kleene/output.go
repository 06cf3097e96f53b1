package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/geange/kleene"
)

type emitter struct {
	format string
	w      io.Writer
}

func newEmitter(format string, w io.Writer) (*emitter, error) {
	switch format {
	case "text", "json", "yaml":
		return &emitter{format: format, w: w}, nil
	}
	return nil, errors.Errorf("unknown output format %q", format)
}

type expressionOutput struct {
	Expression string `json:"expression" yaml:"expression"`
	Size       int    `json:"size" yaml:"size"`
}

type verdictOutput struct {
	Equivalent bool   `json:"equivalent" yaml:"equivalent"`
	Witness    string `json:"witness,omitempty" yaml:"witness,omitempty"`
}

func (e *emitter) expression(r *kleene.RegExp) error {
	if e.format == "text" {
		_, err := fmt.Fprintln(e.w, r)
		return err
	}
	return e.encode(expressionOutput{Expression: r.String(), Size: r.Size()})
}

func (e *emitter) record(rec kleene.AutomatonRecord) error {
	if e.format == "text" {
		_, err := io.WriteString(e.w, rec.String())
		return err
	}
	return e.encode(rec)
}

func (e *emitter) verdict(equivalent bool, witness string) error {
	if e.format == "text" {
		var err error
		if equivalent {
			_, err = fmt.Fprintln(e.w, "equivalent")
		} else {
			_, err = fmt.Fprintf(e.w, "different: %q\n", witness)
		}
		return err
	}
	return e.encode(verdictOutput{Equivalent: equivalent, Witness: witness})
}

func (e *emitter) encode(v any) error {
	switch e.format {
	case "json":
		enc := json.NewEncoder(e.w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encode json")
	case "yaml":
		enc := yaml.NewEncoder(e.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "encode yaml")
	}
	return errors.Errorf("unknown output format %q", e.format)
}
