package configuration

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cast"
	flag "github.com/spf13/pflag"

	"github.com/iotaledger/oneshot/ierrors"
)

// ErrUnsupportedParameterType is returned when a parameter struct contains a field of an unsupported type.
var ErrUnsupportedParameterType = ierrors.New("unsupported parameter type")

var durationType = reflect.TypeOf(time.Duration(0))

// BoundParameter stores the pointer to a value that was bound using the BindParameters function.
type BoundParameter struct {
	boundPointer interface{}
}

// BindParameters is a utility function that allows to define and bind a set of parameters in a single step by using a
// struct as the registry and definition for the created configuration parameters. It parses the relevant information
// from the struct using reflection and optionally provided information in the tags of its fields.
//
// The parameter names are determined by the names of the fields in the struct but they can be overridden by providing a
// name tag.
// The default value is determined by the value of the field in the struct but it can be overridden by
// providing a default tag.
// The usage information are determined by the usage tag of the field.
//
// The method supports nested structs which get translates to parameter names in the following way:
// --namespace.level2.level3.parameterName
func (c *Configuration) BindParameters(flagSet *flag.FlagSet, namespace string, pointerToStruct interface{}) error {
	val := reflect.ValueOf(pointerToStruct).Elem()
	for i := 0; i < val.NumField(); i++ {
		valueField := val.Field(i)
		typeField := val.Type().Field(i)

		name := namespace + "."
		if tagName, exists := typeField.Tag.Lookup("name"); exists {
			name += tagName
		} else {
			name += lowerCamelCase(typeField.Name)
		}

		if valueField.Kind() == reflect.Struct {
			if err := c.BindParameters(flagSet, name, valueField.Addr().Interface()); err != nil {
				return err
			}

			continue
		}

		if tagDefaultValue, exists := typeField.Tag.Lookup("default"); exists {
			if err := setDefault(valueField, tagDefaultValue); err != nil {
				return ierrors.Wrapf(err, "invalid default value of %s", name)
			}
		}

		if err := bindFlag(flagSet, valueField, name, typeField.Tag.Get("shorthand"), typeField.Tag.Get("usage")); err != nil {
			return ierrors.Wrapf(err, "failed to bind %s", name)
		}

		c.boundParameters[strings.ToLower(name)] = &BoundParameter{
			boundPointer: valueField.Addr().Interface(),
		}
	}

	return nil
}

// setDefault parses the given default value and stores it in the field.
func setDefault(field reflect.Value, defaultValue string) error {
	var (
		parsed interface{}
		err    error
	)

	switch {
	case field.Type() == durationType:
		parsed, err = cast.ToDurationE(defaultValue)
	case field.Kind() == reflect.Bool:
		parsed, err = cast.ToBoolE(defaultValue)
	case field.Kind() == reflect.String:
		parsed = defaultValue
	case field.Kind() == reflect.Int, field.Kind() == reflect.Int64:
		parsed, err = cast.ToInt64E(defaultValue)
	case field.Kind() == reflect.Uint, field.Kind() == reflect.Uint64:
		parsed, err = cast.ToUint64E(defaultValue)
	case field.Kind() == reflect.Float64:
		parsed, err = cast.ToFloat64E(defaultValue)
	case field.Type() == reflect.TypeOf([]string(nil)):
		parsed = strings.Split(defaultValue, ",")
	default:
		return ierrors.Wrapf(ErrUnsupportedParameterType, "%s", field.Type())
	}

	if err != nil {
		return err
	}

	field.Set(reflect.ValueOf(parsed).Convert(field.Type()))

	return nil
}

// bindFlag defines a flag in the FlagSet that writes to the given field.
func bindFlag(flagSet *flag.FlagSet, field reflect.Value, name, shortHand, usage string) error {
	switch pointer := field.Addr().Interface().(type) {
	case *time.Duration:
		flagSet.DurationVarP(pointer, name, shortHand, *pointer, usage)
	case *bool:
		flagSet.BoolVarP(pointer, name, shortHand, *pointer, usage)
	case *string:
		flagSet.StringVarP(pointer, name, shortHand, *pointer, usage)
	case *int:
		flagSet.IntVarP(pointer, name, shortHand, *pointer, usage)
	case *int64:
		flagSet.Int64VarP(pointer, name, shortHand, *pointer, usage)
	case *uint:
		flagSet.UintVarP(pointer, name, shortHand, *pointer, usage)
	case *uint64:
		flagSet.Uint64VarP(pointer, name, shortHand, *pointer, usage)
	case *float64:
		flagSet.Float64VarP(pointer, name, shortHand, *pointer, usage)
	case *[]string:
		flagSet.StringSliceVarP(pointer, name, shortHand, *pointer, usage)
	default:
		return ierrors.Wrapf(ErrUnsupportedParameterType, "%s", field.Type())
	}

	return nil
}

// UpdateBoundParameters updates parameters that were bound using the BindParameters method with the current values in
// the configuration.
func (c *Configuration) UpdateBoundParameters() {
	for parameterName, boundParameter := range c.boundParameters {
		if !c.Exists(parameterName) {
			continue
		}

		switch pointer := boundParameter.boundPointer.(type) {
		case *time.Duration:
			*pointer = c.Duration(parameterName)
		case *bool:
			*pointer = c.Bool(parameterName)
		case *string:
			*pointer = c.String(parameterName)
		case *int:
			*pointer = c.Int(parameterName)
		case *int64:
			*pointer = c.Int64(parameterName)
		case *uint:
			*pointer = cast.ToUint(c.config.Get(parameterName))
		case *uint64:
			*pointer = cast.ToUint64(c.config.Get(parameterName))
		case *float64:
			*pointer = c.Float64(parameterName)
		case *[]string:
			*pointer = c.Strings(parameterName)
		}
	}
}

// lowerCamelCase converts the given string to lowerCamelCase (leading acronyms are lower cased as a whole).
func lowerCamelCase(str string) string {
	runes := []rune(str)
	runeCount := len(runes)

	if runeCount == 0 || unicode.IsLower(runes[0]) {
		return str
	}

	runes[0] = unicode.ToLower(runes[0])
	if runeCount == 1 || unicode.IsLower(runes[1]) {
		return string(runes)
	}

	for i := 1; i < runeCount; i++ {
		if i+1 < runeCount && unicode.IsLower(runes[i+1]) {
			break
		}

		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}
