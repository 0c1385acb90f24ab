// Package validation holds the per-entity rule sets applied to form
// input before submission. Every schema is validated synchronously and
// either passes or produces a map of field paths to messages; nothing
// here touches the network.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldErrors maps a field path to its validation messages.
// Array-level errors use the array field itself as the path
// (e.g. "items"), element errors use the indexed path
// (e.g. "items[2].materialId").
type FieldErrors map[string][]string

// Add appends a message for a field
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Error renders all messages sorted by field path
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(fe[f], ", "))
	}
	return b.String()
}

// Messages for the custom cross-field tags; standard tags are
// translated by the validator's en locale.
var customMessages = map[string]string{
	"refcode":        "may only contain letters, digits, hyphens and underscores",
	"dateorder":      "end date must not be before start date",
	"notfuture":      "date must not be in the future",
	"uniquematerial": "line items must reference distinct materials",
}

var refCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validator wraps go-playground/validator with the dashboard's schemas
// registered: json field names, en translations, the refcode tag and
// the cross-field struct rules.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
	now      func() time.Time
}

// New creates a fully registered validator
func New() (*Validator, error) {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}

	// Пути полей в ошибках берём из json тегов
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.validate.RegisterValidation("refcode", validateRefCode); err != nil {
		return nil, err
	}

	v.validate.RegisterStructValidation(validateProjectDates, ProjectInput{})
	v.validate.RegisterStructValidation(validateOrderItems, PurchaseOrderInput{})
	v.validate.RegisterStructValidation(v.validateInvoiceDate, InvoiceInput{})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("en translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(v.validate, trans); err != nil {
		return nil, err
	}
	v.trans = trans

	return v, nil
}

// Validate applies the schema registered for the input's type.
// Returns nil when the input is valid.
func (v *Validator) Validate(input any) FieldErrors {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": {err.Error()}}
	}

	fe := make(FieldErrors, len(verrs))
	for _, f := range verrs {
		fe.Add(fieldPath(f.Namespace()), v.message(f))
	}
	return fe
}

// fieldPath strips the root struct name from a namespace:
// "ProjectInput.endDate" -> "endDate",
// "PurchaseOrderInput.items[2].materialId" -> "items[2].materialId"
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func (v *Validator) message(f validator.FieldError) string {
	if msg, ok := customMessages[f.Tag()]; ok {
		return msg
	}
	return f.Translate(v.trans)
}

func validateRefCode(fl validator.FieldLevel) bool {
	return refCodePattern.MatchString(fl.Field().String())
}

// validateProjectDates attaches the date-ordering error to the
// end-date field. Unparsable dates are left to the datetime tag.
func validateProjectDates(sl validator.StructLevel) {
	in := sl.Current().Interface().(ProjectInput)
	if in.StartDate == "" || in.EndDate == "" {
		return
	}

	start, err := time.ParseInLocation(DateLayout, in.StartDate, time.Local)
	if err != nil {
		return
	}
	end, err := time.ParseInLocation(DateLayout, in.EndDate, time.Local)
	if err != nil {
		return
	}

	if end.Before(start) {
		sl.ReportError(in.EndDate, "endDate", "EndDate", "dateorder", "")
	}
}

// validateOrderItems rejects duplicate material references with a
// single array-level error, not one per offending line
func validateOrderItems(sl validator.StructLevel) {
	in := sl.Current().Interface().(PurchaseOrderInput)

	seen := make(map[int64]struct{}, len(in.Items))
	for _, item := range in.Items {
		if item.MaterialID == 0 {
			continue
		}
		if _, dup := seen[item.MaterialID]; dup {
			sl.ReportError(in.Items, "items", "Items", "uniquematerial", "")
			return
		}
		seen[item.MaterialID] = struct{}{}
	}
}

// validateInvoiceDate rejects dates strictly after today, compared at
// local midnight. Today and any past date pass.
func (v *Validator) validateInvoiceDate(sl validator.StructLevel) {
	in := sl.Current().Interface().(InvoiceInput)
	if in.InvoiceDate == "" {
		return
	}

	d, err := time.ParseInLocation(DateLayout, in.InvoiceDate, time.Local)
	if err != nil {
		return
	}

	y, m, day := v.now().Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.Local)

	if d.After(today) {
		sl.ReportError(in.InvoiceDate, "invoiceDate", "InvoiceDate", "notfuture", "")
	}
}
