package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/shopspring/decimal"
)

// PriceField is the item key read by CalculateTotal.
const PriceField = "price"

var (
	// ErrMissingPrice is returned when an item has no price field.
	ErrMissingPrice = errors.New("missing price field")

	// ErrNonNumericPrice is returned when an item's price is not a number.
	ErrNonNumericPrice = errors.New("price is not numeric")
)

// Item is a priced record. Only the "price" field is interpreted; any other
// keys are carried along untouched.
type Item map[string]interface{}

// Price returns the item's price as a decimal.
func (it Item) Price() (decimal.Decimal, error) {
	v, ok := it[PriceField]
	if !ok {
		return decimal.Zero, ErrMissingPrice
	}
	return toDecimal(v)
}

func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, nil
	case float64:
		return fromFloat(val)
	case float32:
		return fromFloat(float64(val))
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int8:
		return decimal.NewFromInt(int64(val)), nil
	case int16:
		return decimal.NewFromInt(int64(val)), nil
	case int32:
		return decimal.NewFromInt32(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case uint:
		return decimal.NewFromUint64(uint64(val)), nil
	case uint8:
		return decimal.NewFromUint64(uint64(val)), nil
	case uint16:
		return decimal.NewFromUint64(uint64(val)), nil
	case uint32:
		return decimal.NewFromUint64(uint64(val)), nil
	case uint64:
		return decimal.NewFromUint64(val), nil
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrNonNumericPrice, val.String())
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: has type %T", ErrNonNumericPrice, v)
	}
}

// fromFloat rejects NaN and infinities, which have no decimal form.
func fromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrNonNumericPrice, f)
	}
	return decimal.NewFromFloat(f), nil
}

// DecodeItems reads a JSON array of objects into items. Numbers are kept as
// json.Number so prices keep their exact textual value.
func DecodeItems(r io.Reader) ([]Item, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var items []Item
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("DecodeItems: %w", err)
	}
	return items, nil
}
