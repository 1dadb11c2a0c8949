package rdf

// XSDNamespace is the XML Schema datatype namespace.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

// RDFNamespace is the RDF syntax namespace.
const RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// XSD datatypes used by the default converters.
var (
	XSDString        = NewURI(XSDNamespace + "string")
	XSDBoolean       = NewURI(XSDNamespace + "boolean")
	XSDDecimal       = NewURI(XSDNamespace + "decimal")
	XSDInteger       = NewURI(XSDNamespace + "integer")
	XSDLong          = NewURI(XSDNamespace + "long")
	XSDInt           = NewURI(XSDNamespace + "int")
	XSDShort         = NewURI(XSDNamespace + "short")
	XSDByte          = NewURI(XSDNamespace + "byte")
	XSDUnsignedLong  = NewURI(XSDNamespace + "unsignedLong")
	XSDUnsignedInt   = NewURI(XSDNamespace + "unsignedInt")
	XSDUnsignedShort = NewURI(XSDNamespace + "unsignedShort")
	XSDUnsignedByte  = NewURI(XSDNamespace + "unsignedByte")
	XSDFloat         = NewURI(XSDNamespace + "float")
	XSDDouble        = NewURI(XSDNamespace + "double")
	XSDDateTime      = NewURI(XSDNamespace + "dateTime")
	XSDDate          = NewURI(XSDNamespace + "date")
	XSDDuration      = NewURI(XSDNamespace + "duration")
	XSDLanguage      = NewURI(XSDNamespace + "language")
	XSDAnyURI        = NewURI(XSDNamespace + "anyURI")

	RDFType = NewURI(RDFNamespace + "type")
)
