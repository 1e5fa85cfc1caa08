// Package form defines the input model for a scantron sheet: the client the
// sheet is printed for and the product rows it carries. Sheets are loaded
// from JSON or TOML files, or constructed directly by API callers.
package form

import (
	"github.com/scanform/scanform/pkg/errors"
)

// Client identifies who the audit sheet belongs to. The ID is used verbatim
// as the payload of the client code image; the name is printed next to it.
type Client struct {
	Name string `json:"name" toml:"name"`
	ID   string `json:"id" toml:"id"`
}

// Product is one row on the sheet: a display name printed as-is and an
// identifier string encoded into the row's code image.
type Product struct {
	Name string `json:"name" toml:"name"`
	ID   string `json:"id" toml:"id"`
}

// Sheet is the full input for one document generation run.
type Sheet struct {
	Client   Client    `json:"client" toml:"client"`
	Products []Product `json:"products" toml:"products"`
}

// Validate checks the sheet before any layout or drawing happens.
// An empty product list is valid: the document still carries the client
// section and date fields.
func (s *Sheet) Validate() error {
	if err := errors.ValidateName(s.Client.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSheet, err, "client name")
	}
	if err := errors.ValidatePayload(s.Client.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSheet, err, "client id")
	}

	for i, p := range s.Products {
		if err := errors.ValidateName(p.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSheet, err, "product %d name", i)
		}
		if err := errors.ValidatePayload(p.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSheet, err, "product %d id", i)
		}
	}

	return nil
}
