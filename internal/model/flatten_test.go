package model

import "testing"

func TestFlatten_Basic(t *testing.T) {
	elements := []Element{
		{Type: "Button", Label: "OK", Frame: Frame{0, 0, 100, 30}},
		{Type: "StaticText", Label: "Hello", Frame: Frame{0, 30, 100, 20}},
	}
	result := Flatten(elements)
	if len(result) != 2 {
		t.Fatalf("expected 2 flat elements, got %d", len(result))
	}
	if result[0].Label != "OK" || result[1].Label != "Hello" {
		t.Errorf("unexpected order: %q, %q", result[0].Label, result[1].Label)
	}
}

func TestFlatten_PreOrder(t *testing.T) {
	elements := []Element{
		{
			Type: "Application", Label: "Settings",
			Children: []Element{
				{
					Type: "NavigationBar", Label: "Nav",
					Children: []Element{
						{Type: "Button", Label: "Back"},
					},
				},
				{Type: "Cell", Label: "General"},
			},
		},
	}
	result := Flatten(elements)
	want := []string{"Settings", "Nav", "Back", "General"}
	if len(result) != len(want) {
		t.Fatalf("expected %d flat elements, got %d", len(want), len(result))
	}
	for i, label := range want {
		if result[i].Label != label {
			t.Errorf("position %d: expected %q, got %q", i, label, result[i].Label)
		}
	}
}

func TestFlatten_DropsChildren(t *testing.T) {
	elements := []Element{
		{Type: "Group", Children: []Element{{Type: "Button", Label: "Go"}}},
	}
	for _, el := range Flatten(elements) {
		if len(el.Children) != 0 {
			t.Errorf("element %q still has %d children", el.Type, len(el.Children))
		}
	}
	if len(elements[0].Children) != 1 {
		t.Error("input tree must not be modified")
	}
}

func TestFlatten_NoChildren(t *testing.T) {
	result := Flatten(nil)
	if len(result) != 0 {
		t.Errorf("expected 0 elements for nil input, got %d", len(result))
	}
}
