// Package pdffill fills the text fields of a fillable PDF template using
// pdfcpu. Field values are handed over through pdfcpu's form-fill JSON,
// with every field locked so the output renders as a flattened document.
package pdffill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/thandol/j101-generator/internal/ports"
)

type textField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Locked bool   `json:"locked"`
}

type form struct {
	TextFields []textField `json:"textfield"`
}

type fillData struct {
	Forms []form `json:"forms"`
}

type Filler struct {
	log *slog.Logger
}

var _ ports.FormFiller = (*Filler)(nil)

func NewFiller(log *slog.Logger) *Filler {
	if log == nil {
		log = slog.Default()
	}
	return &Filler{log: log}
}

// Fill stamps fields into the template at templatePath and writes the
// resulting PDF to w. Fields absent from the template are ignored by
// pdfcpu; fields absent from the map are left blank.
func (f *Filler) Fill(ctx context.Context, templatePath string, fields map[string]string, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmpl, err := os.Open(templatePath)
	if err != nil {
		return fmt.Errorf("open template: %w", err)
	}
	defer tmpl.Close()

	payload, err := buildFillJSON(fields)
	if err != nil {
		return fmt.Errorf("encode fill data: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.FillForm(tmpl, bytes.NewReader(payload), w, conf); err != nil {
		return fmt.Errorf("fill form: %w", err)
	}

	f.log.Debug("filled pdf template", "template", templatePath, "fields", len(fields))
	return nil
}

// buildFillJSON serializes fields in pdfcpu's form-fill format. Fields
// are sorted by name so the payload is deterministic.
func buildFillJSON(fields map[string]string) ([]byte, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	tf := make([]textField, 0, len(names))
	for _, name := range names {
		tf = append(tf, textField{Name: name, Value: fields[name], Locked: true})
	}
	return json.Marshal(fillData{Forms: []form{{TextFields: tf}}})
}
