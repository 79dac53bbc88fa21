package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"text_bounds_class_id",
			Node{Index: 3, Text: "OK", ClassName: "android.widget.Button",
				ResourceID: "com.example:id/ok_button", Bounds: "10, 10, 50, 30"},
			`[3] "OK" center=(30,20) bounds=(10,10,50,30) class=Button id=ok_button`,
		},
		{
			"no_text_no_bounds",
			Node{Index: 7, ClassName: "android.widget.ImageView"},
			`[7] class=ImageView`,
		},
		{
			"content_description_fallback",
			Node{Index: 1, ContentDesc: "Back", ClassName: "android.widget.ImageButton"},
			`[1] "Back" class=ImageButton`,
		},
		{
			"obfuscated_resource_id_hidden",
			Node{Index: 2, Text: "Hi", ClassName: "android.widget.TextView",
				ResourceID: "com.app:id/obfuscated_0x7f"},
			`[2] "Hi" class=TextView`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLine(&tt.node, true); got != tt.want {
				t.Errorf("FormatLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatLineStates(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"checked",
			Node{Index: 1, ClassName: "android.widget.Switch",
				IsCheckable: boolPtr(true), IsChecked: boolPtr(true)},
			`[1] class=Switch [checked=true]`,
		},
		{
			"unchecked",
			Node{Index: 1, ClassName: "android.widget.CheckBox", CheckedAlt: boolPtr(false)},
			`[1] class=CheckBox [checked=false]`,
		},
		{
			"disabled_only_when_false",
			Node{Index: 1, ClassName: "android.widget.Button", IsEnabled: boolPtr(false)},
			`[1] class=Button [enabled=false]`,
		},
		{
			"enabled_true_not_surfaced",
			Node{Index: 1, ClassName: "android.widget.Button", IsEnabled: boolPtr(true)},
			`[1] class=Button`,
		},
		{
			"selected_and_focused",
			Node{Index: 1, ClassName: "android.widget.EditText",
				IsSelected: boolPtr(true), IsFocused: boolPtr(true)},
			`[1] class=EditText [selected=true, focused=true]`,
		},
		{
			"states_suppressed",
			Node{Index: 1, ClassName: "android.widget.Switch", IsChecked: boolPtr(true)},
			`[1] class=Switch [checked=true]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLine(&tt.node, true); got != tt.want {
				t.Errorf("FormatLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatLineWithoutState(t *testing.T) {
	n := Node{Index: 1, ClassName: "android.widget.Switch", IsChecked: boolPtr(true)}
	got := FormatLine(&n, false)
	if strings.Contains(got, "checked") {
		t.Errorf("state flags should be omitted: %q", got)
	}
}

func TestFormatRecordNullSemantics(t *testing.T) {
	n := Node{Index: 4, Text: "OK", ClassName: "android.widget.Button", Bounds: "10, 10, 50, 30"}
	rec := FormatRecord(&n)

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	// Absent state flags must serialize as null, not false.
	for _, key := range []string{"checked", "enabled", "selected", "focused", "clickable"} {
		v, present := decoded[key]
		if !present {
			t.Errorf("%s missing from record", key)
			continue
		}
		if v != nil {
			t.Errorf("%s = %v, want null", key, v)
		}
	}

	if decoded["text"] != "OK" || decoded["className"] != "Button" {
		t.Errorf("unexpected record contents: %v", decoded)
	}
	center, ok := decoded["center"].([]interface{})
	if !ok || len(center) != 2 || center[0].(float64) != 30 || center[1].(float64) != 20 {
		t.Errorf("center = %v, want [30 20]", decoded["center"])
	}
}

func TestFormatRecordStates(t *testing.T) {
	n := Node{Index: 1, ClassName: "android.widget.Switch",
		IsChecked: boolPtr(false), EnabledAlt: boolPtr(true)}
	rec := FormatRecord(&n)

	if rec.Checked == nil || *rec.Checked {
		t.Errorf("Checked = %v, want false", rec.Checked)
	}
	if rec.Enabled == nil || !*rec.Enabled {
		t.Errorf("Enabled = %v, want true", rec.Enabled)
	}
	if rec.Selected != nil {
		t.Errorf("Selected = %v, want nil", rec.Selected)
	}
}
