package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetSkip
)

// Field represents a component field with rendering hints.
type Field struct {
	Name    string
	Value   interface{}
	Widget  Widget
	Options map[string]string
}

// Text formats the field value using its fmt option.
func (f Field) Text() string {
	return FormatValue(f.Value, f.Options["fmt"])
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
// Examples:
//
//	`inspect:"bar"`
//	`inspect:"bar,max:200"`
//	`inspect:"label,fmt:%.1f px"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")
	widgetStr := strings.TrimSpace(parts[0])

	var widget Widget
	switch widgetStr {
	case "label":
		widget = WidgetLabel
	case "bar":
		widget = WidgetBar
	case "bool":
		widget = WidgetBool
	case "skip":
		widget = WidgetSkip
	default:
		widget = WidgetAuto
	}

	// Parse options
	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}

	return widget, options
}

// ExtractFields uses reflection to extract all fields from a component.
func ExtractFields(component interface{}) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)

		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}

	return fields
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	if v.Kind() == reflect.Bool {
		return WidgetBool
	}
	return WidgetLabel
}

// FormatValue formats a field value as a string.
// Durations print in milliseconds and named enums use their String method.
func FormatValue(value interface{}, fmtStr string) string {
	switch v := value.(type) {
	case time.Duration:
		if fmtStr == "" {
			return fmt.Sprintf("%d ms", v.Milliseconds())
		}
		return fmt.Sprintf(fmtStr, float64(v)/float64(time.Millisecond))
	case fmt.Stringer:
		if fmtStr == "" {
			return v.String()
		}
	}

	if fmtStr == "" {
		switch v := value.(type) {
		case float32:
			return fmt.Sprintf("%.2f", v)
		case float64:
			return fmt.Sprintf("%.2f", v)
		default:
			return fmt.Sprintf("%v", value)
		}
	}
	return fmt.Sprintf(fmtStr, value)
}

// GetMax returns the max option as a float, defaulting to 1.0.
func GetMax(options map[string]string) float32 {
	if s, ok := options["max"]; ok {
		if m, err := strconv.ParseFloat(s, 32); err == nil {
			return float32(m)
		}
	}
	return 1.0
}

// GetFloatValue extracts a float32 from various types.
func GetFloatValue(value interface{}) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int32:
		return float32(v), true
	case int64:
		return float32(v), true
	case uint32:
		return float32(v), true
	default:
		return 0, false
	}
}
