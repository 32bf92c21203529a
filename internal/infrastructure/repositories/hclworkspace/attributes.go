package hclworkspace

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// attributeDecoder evaluates attributes against one context and accumulates diagnostics.
type attributeDecoder struct {
	ctx   *hcl.EvalContext
	diags hcl.Diagnostics
}

func newAttributeDecoder(ctx *hcl.EvalContext) *attributeDecoder {
	return &attributeDecoder{ctx: ctx}
}

// value evaluates an attribute and converts it to want. Missing, null and
// unknown values report false.
func (d *attributeDecoder) value(attrs hcl.Attributes, name string, want cty.Type) (cty.Value, bool) {
	attr, ok := attrs[name]
	if !ok {
		return cty.NilVal, false
	}

	val, diags := attr.Expr.Value(d.ctx)
	d.diags = append(d.diags, diags...)
	if diags.HasErrors() {
		return cty.NilVal, false
	}

	converted, err := convert.Convert(val, want)
	if err != nil {
		d.diags = append(d.diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid attribute value",
			Detail:   fmt.Sprintf("Attribute %q must be %s: %s.", name, want.FriendlyName(), err),
			Subject:  attr.Expr.Range().Ptr(),
		})
		return cty.NilVal, false
	}
	if converted.IsNull() || !converted.IsKnown() {
		return cty.NilVal, false
	}
	return converted, true
}

func (d *attributeDecoder) string(attrs hcl.Attributes, name string) string {
	val, ok := d.value(attrs, name, cty.String)
	if !ok {
		return ""
	}
	return val.AsString()
}

func (d *attributeDecoder) bool(attrs hcl.Attributes, name string) bool {
	val, ok := d.value(attrs, name, cty.Bool)
	if !ok {
		return false
	}
	return val.True()
}

func (d *attributeDecoder) int(attrs hcl.Attributes, name string) int {
	val, ok := d.value(attrs, name, cty.Number)
	if !ok {
		return 0
	}
	number, _ := val.AsBigFloat().Int64()
	return int(number)
}

func (d *attributeDecoder) strings(attrs hcl.Attributes, name string) []string {
	val, ok := d.value(attrs, name, cty.List(cty.String))
	if !ok {
		return nil
	}
	result := make([]string, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, element := it.Element()
		if element.IsNull() || !element.IsKnown() {
			continue
		}
		result = append(result, element.AsString())
	}
	return result
}
