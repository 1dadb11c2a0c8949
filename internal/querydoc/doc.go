// Package querydoc decodes YAML query documents into algebra.Query values.
//
// A document describes one query:
//
//	kind: tuple                 # tuple | boolean | graph (or select | ask | construct)
//	distinct: true
//	select: ["?x", {op: COUNT, args: ["?y"]}]
//	sources: ["<http://ex/g>"]
//	where:
//	  group:
//	    - pattern: ["?x", "<http://ex/p>", "$name"]
//	    - optional:
//	        - pattern: ["?x", "<http://ex/q>", "?y"]
//	  filter: {op: NE, args: ["?y", {value: "chat", lang: fr}]}
//	order: ["?x", {desc: "?y"}]
//	limit: 10
//	params:
//	  name: "Alice"
//
// Terms are written as strings: ?x is a variable, $x a parameter, <iri> a
// URI, _:b a blank node, anything else a plain literal. YAML integers,
// floats and booleans become xsd:integer, xsd:decimal and xsd:boolean
// literals. A mapping {value, lang | datatype} is a literal. Literal text is
// NFC normalized.
//
// Expressions are {op: TAG, args: [...]} mappings. A sequence argument is a
// constant collection (IN lists). {subquery: <query>} nests a query and
// {block: <block>} places a graph pattern in expression position.
//
// Blocks are mappings with exactly one of pattern, group, union, optional or
// graph (with blocks); group, optional and graph accept a filter.
package querydoc
