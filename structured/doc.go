// Package structured converts a [filter.Document] to and from a structured
// YAML or JSON form.
//
// The structured form is what an editing surface shows in its form view.
// Unlike rule file text, it carries block IDs, so an export followed by an
// import keeps identities without reconciliation:
//
//	blocks:
//	  - id: 7b0e...
//	    type: Show
//	    category: Currency
//	    name: Chaos
//	    header: Currency - Chaos
//	    lines:
//	      - key: BaseType
//	        values: ['"Chaos Orb"']
//	      - key: ItemLevel
//	        operator: '>='
//	        values: ["60"]
//
// [Unmarshal] validates input against [Schema] before building blocks, and
// builds them through the [filter.Block] mutation methods so repeated
// merge-key lines collapse the same way they do when parsing text.
package structured
