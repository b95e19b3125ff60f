package model

// Flatten converts a tree of elements into a flat list in pre-order.
// Children are dropped from the returned records.
func Flatten(elements []Element) []Element {
	var result []Element
	for _, el := range elements {
		flattenRecursive(el, &result)
	}
	return result
}

func flattenRecursive(el Element, result *[]Element) {
	flat := el
	flat.Children = nil
	*result = append(*result, flat)

	for _, child := range el.Children {
		flattenRecursive(child, result)
	}
}
