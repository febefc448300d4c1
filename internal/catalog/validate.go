package catalog

// validate.go decides whether a normalized row is a storable product.
//
// Rules are checked in order and short-circuit on the first failure:
//  1. required text fields present and non-empty
//  2. required numeric fields present and non-empty
//  3. price, mrp, quantity parse as numbers
//  4. price must not exceed mrp
//  5. quantity must be non-negative
//
// Validation never panics or raises; a bad row is reported through the
// return value.

import (
	"fmt"
	"math"
	"strconv"
)

// Field order matters for error reporting: the first missing field wins.
var (
	requiredTextFields    = []string{"sku", "name", "brand", "color", "size"}
	requiredNumericFields = []string{"mrp", "price", "quantity"}
)

// IsValid reports whether a normalized row satisfies every product rule.
// Pure and total: any map input yields a boolean, never an error.
func IsValid(row RawRow) bool {
	return Validate(row) == nil
}

// Validate checks a normalized row and returns the first rule violation,
// or nil if the row is a valid product.
func Validate(row RawRow) error {
	for _, f := range requiredTextFields {
		if row[f] == "" {
			return fmt.Errorf("missing required field %q", f)
		}
	}
	for _, f := range requiredNumericFields {
		if row[f] == "" {
			return fmt.Errorf("missing required field %q", f)
		}
	}

	price, err := strconv.ParseFloat(row["price"], 64)
	if err != nil {
		return fmt.Errorf("invalid number for %q: %q", "price", row["price"])
	}
	mrp, err := strconv.ParseFloat(row["mrp"], 64)
	if err != nil {
		return fmt.Errorf("invalid number for %q: %q", "mrp", row["mrp"])
	}
	qty, err := strconv.ParseFloat(row["quantity"], 64)
	if err != nil {
		return fmt.Errorf("invalid number for %q: %q", "quantity", row["quantity"])
	}

	if price > mrp {
		return fmt.Errorf("price %v exceeds mrp %v", price, mrp)
	}
	if qty < 0 {
		return fmt.Errorf("negative quantity %v", qty)
	}

	return nil
}

// ToProduct is the single conversion point from an untyped row into a
// typed Product. It applies Validate and additionally requires quantity
// to be a whole number, since the stored column is an integer.
func ToProduct(row RawRow) (Product, error) {
	if err := Validate(row); err != nil {
		return Product{}, err
	}

	// Parse errors are impossible after Validate.
	price, _ := strconv.ParseFloat(row["price"], 64)
	mrp, _ := strconv.ParseFloat(row["mrp"], 64)
	qty, _ := strconv.ParseFloat(row["quantity"], 64)

	if qty != math.Trunc(qty) {
		return Product{}, fmt.Errorf("quantity %q is not a whole number", row["quantity"])
	}

	return Product{
		SKU:      row["sku"],
		Name:     row["name"],
		Brand:    row["brand"],
		Color:    row["color"],
		Size:     row["size"],
		MRP:      mrp,
		Price:    price,
		Quantity: int(qty),
	}, nil
}
