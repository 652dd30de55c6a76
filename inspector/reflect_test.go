package inspector

import (
	"testing"
	"time"

	"github.com/pthm-cable/drizzle/components"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag        string
		wantWidget Widget
		wantOpts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar", WidgetBar, map[string]string{}},
		{"bar,max:200", WidgetBar, map[string]string{"max": "200"}},
		{"label,fmt:%.1f px", WidgetLabel, map[string]string{"fmt": "%.1f px"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"unknown", WidgetAuto, map[string]string{}},
	}

	for _, tt := range tests {
		widget, opts := ParseTag(tt.tag)
		if widget != tt.wantWidget {
			t.Errorf("ParseTag(%q) widget = %d, want %d", tt.tag, widget, tt.wantWidget)
		}
		if len(opts) != len(tt.wantOpts) {
			t.Errorf("ParseTag(%q) options = %v, want %v", tt.tag, opts, tt.wantOpts)
			continue
		}
		for k, v := range tt.wantOpts {
			if opts[k] != v {
				t.Errorf("ParseTag(%q) option %q = %q, want %q", tt.tag, k, opts[k], v)
			}
		}
	}
}

func TestExtractFieldsRaindrop(t *testing.T) {
	drop := components.Raindrop{
		Width:   2,
		Height:  14,
		Opacity: 0.8,
		Origin:  components.OriginDeflect,
		BornAt:  250 * time.Millisecond,
	}

	fields := ExtractFields(&drop)
	want := []string{"Width", "Height", "Opacity", "Origin", "BornAt"}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, name := range want {
		if fields[i].Name != name {
			t.Errorf("field %d = %s, want %s", i, fields[i].Name, name)
		}
	}

	if fields[2].Widget != WidgetBar {
		t.Errorf("Opacity widget = %d, want bar", fields[2].Widget)
	}
	if got := fields[1].Text(); got != "14.0 px" {
		t.Errorf("Height text = %q, want %q", got, "14.0 px")
	}
	if got := fields[3].Text(); got != components.OriginDeflect.String() {
		t.Errorf("Origin text = %q, want %q", got, components.OriginDeflect.String())
	}
	if got := fields[4].Text(); got != "250 ms" {
		t.Errorf("BornAt text = %q, want %q", got, "250 ms")
	}
}

func TestExtractFieldsSkipsTaggedAndUnexported(t *testing.T) {
	type sample struct {
		Shown  int
		Hidden int `inspect:"skip"`
		Flag   bool
		secret int
	}

	fields := ExtractFields(sample{Shown: 1, Hidden: 2, Flag: true, secret: 3})
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[1].Widget != WidgetBool {
		t.Errorf("bool field widget = %d, want bool", fields[1].Widget)
	}

	if ExtractFields(42) != nil {
		t.Error("non-struct should yield no fields")
	}
	var nilDrop *components.Raindrop
	if ExtractFields(nilDrop) != nil {
		t.Error("nil pointer should yield no fields")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value  interface{}
		fmtStr string
		want   string
	}{
		{float32(1.234), "", "1.23"},
		{2.5, "%.1f", "2.5"},
		{7, "", "7"},
		{1500 * time.Millisecond, "", "1500 ms"},
		{1500 * time.Millisecond, "%.0f ms", "1500 ms"},
		{components.CauseSettled, "", components.CauseSettled.String()},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value, tt.fmtStr); got != tt.want {
			t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.fmtStr, got, tt.want)
		}
	}
}

func TestGetMax(t *testing.T) {
	if got := GetMax(map[string]string{}); got != 1 {
		t.Errorf("default max = %v, want 1", got)
	}
	if got := GetMax(map[string]string{"max": "200"}); got != 200 {
		t.Errorf("max = %v, want 200", got)
	}
	if got := GetMax(map[string]string{"max": "x"}); got != 1 {
		t.Errorf("invalid max = %v, want 1", got)
	}
}

func TestGetFloatValue(t *testing.T) {
	if v, ok := GetFloatValue(float64(0.5)); !ok || v != 0.5 {
		t.Errorf("float64 = (%v, %v), want (0.5, true)", v, ok)
	}
	if _, ok := GetFloatValue("nope"); ok {
		t.Error("string should not convert")
	}
}
