package tags

import "fmt"

// ApplicationDataLength is the size of
// the fixed application properties at the
// start of an Application payload.
const ApplicationDataLength = 13

var (
	IDApplication = registerTagType(TagMetadata{
		IDValue:   0xf40a0af4,
		Name:      "APPLICATION",
		Kind:      KindApplication,
		MinLength: ApplicationDataLength,
		Decoder:   decodeApplication,
	})
)

// Application describes the application
// contained in the image. Bytes following
// the fixed properties are kept in Extra.
type Application struct {
	Type         uint32
	Version      uint32
	Capabilities uint32
	ProductID    uint8
	Extra        []byte
}

// NewApplication constructs an Application tag.
func NewApplication(appType, version, capabilities uint32, productID uint8, extra []byte) *Application {
	return &Application{
		Type:         appType,
		Version:      version,
		Capabilities: capabilities,
		ProductID:    productID,
		Extra:        bytesOrNil(extra),
	}
}

func decodeApplication(_ TagHeader, payload []byte) (Tag, error) {
	r := &payloadReader{buf: payload}
	app := &Application{
		Type:         r.u32(),
		Version:      r.u32(),
		Capabilities: r.u32(),
		ProductID:    r.u8(),
		Extra:        r.rest(),
	}

	if r.err != nil {
		return nil, fmt.Errorf("decode application: %w", r.err)
	}

	return app, nil
}

func (app *Application) ID() ID     { return IDApplication }
func (app *Application) Kind() Kind { return KindApplication }

func (app *Application) Length() uint32 {
	return ApplicationDataLength + uint32(len(app.Extra))
}

func (app *Application) appendPayload(dst []byte) []byte {
	dst = byteOrder.AppendUint32(dst, app.Type)
	dst = byteOrder.AppendUint32(dst, app.Version)
	dst = byteOrder.AppendUint32(dst, app.Capabilities)
	dst = append(dst, app.ProductID)
	return append(dst, app.Extra...)
}

func (app *Application) String() string {
	return fmt.Sprintf("Application{type: %d, version: 0x%08x, capabilities: 0x%08x, product_id: %d}", app.Type, app.Version, app.Capabilities, app.ProductID)
}
