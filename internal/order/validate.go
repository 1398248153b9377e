package order

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const itemFieldsMsg = "Each item must include menuItem, itemName, and quantity."

// Totals are stored as NUMERIC(12, 2).
var maxTotal = decimal.New(1, 10)

func validTotal(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThan(maxTotal) && d.Equal(d.Round(2))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			fl, _ := d.Float64()
			return fl
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Messages in the order they are reported when several fields fail.
var fieldMessages = []struct {
	field string
	msg   string
}{
	{"Restaurant", "Restaurant ID is required."},
	{"RestaurantName", "Restaurant name is required."},
	{"Items", "Order items are required."},
	{"TotalAmount", "Valid total amount is required."},
	{"Address", "Delivery address is required."},
}

// normalize trims free text and fills the default size.
func (r *PlaceOrderRequest) normalize() {
	r.Restaurant = strings.TrimSpace(r.Restaurant)
	r.RestaurantName = strings.TrimSpace(r.RestaurantName)
	r.Address = strings.TrimSpace(r.Address)
	for i := range r.Items {
		it := &r.Items[i]
		it.MenuItem = strings.TrimSpace(it.MenuItem)
		it.ItemName = strings.TrimSpace(it.ItemName)
		it.Size = strings.TrimSpace(it.Size)
		if it.Size == "" {
			it.Size = DefaultSize
		}
	}
}

// Validate normalizes r in place and returns a *ValidationError naming the
// first offending field.
func (r *PlaceOrderRequest) Validate() error {
	r.normalize()
	failed := map[string]bool{}
	itemFailed := false
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			if strings.Contains(fe.StructNamespace(), ".Items[") {
				itemFailed = true
				continue
			}
			failed[fe.StructField()] = true
		}
	}
	if !validTotal(r.TotalAmount) {
		failed["TotalAmount"] = true
	}
	if len(failed) == 0 && !itemFailed {
		return nil
	}

	for _, fm := range fieldMessages {
		if failed[fm.field] {
			return invalid(fm.msg)
		}
	}
	if itemFailed {
		return invalid(itemFieldsMsg)
	}
	return invalid("Invalid order payload.")
}
