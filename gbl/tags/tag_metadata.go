package tags

type (
	// TagDecoder defines the function signature
	// for a function that can decode a specific
	// GBL tag from its raw payload into the
	// data structure that represents it.
	//
	// The payload is guaranteed to be exactly
	// hdr.Length bytes long and at least as long
	// as the MinLength of the kind.
	TagDecoder func(hdr TagHeader, payload []byte) (Tag, error)

	// TagMetadata defines a data structure
	// used to store information about a specific
	// GBL tag kind so that this library can
	// appropriately decode the tag.
	TagMetadata struct {
		// IDValue specifies the 32-bit unsigned
		// integer used on the wire to identify
		// the specific GBL tag.
		IDValue uint32

		// Name specifies a unique name for the
		// GBL tag that is used when producing
		// listings and error messages.
		Name string

		// Kind specifies the closed kind the
		// tag decodes into.
		Kind Kind

		// MinLength specifies, in bytes, the
		// smallest payload the fixed part of
		// the tag's layout requires.
		MinLength uint32

		// Decoder specifies the TagDecoder
		// function to use when decoding the
		// specific GBL tag from its raw format.
		Decoder TagDecoder
	}
)
