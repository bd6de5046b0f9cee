package render

// inlineElements keep their content on one line in pretty output.
var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"button": true,
	"code":   true,
	"em":     true,
	"h1":     true,
	"i":      true,
	"label":  true,
	"li":     true,
	"p":      true,
	"script": true,
	"small":  true,
	"span":   true,
	"strong": true,
	"style":  true,
	"title":  true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are written as a bare name when true and omitted when false.
var booleanAttrs = map[string]bool{
	"async":       true,
	"autofocus":   true,
	"checked":     true,
	"defer":       true,
	"disabled":    true,
	"hidden":      true,
	"multiple":    true,
	"novalidate":  true,
	"readonly":    true,
	"required":    true,
	"selected":    true,
	"playsinline": true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
