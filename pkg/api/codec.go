// Package api defines the request and response messages of the Neondara RPC services.
//
// Messages are plain Go structs carried as JSON; apiconnect wires them to
// connect handlers and clients.
package api

import "encoding/json"

// JSONCodec is a connect.Codec for the plain structs in this package.
// It registers under "json", so it serves application/json and
// application/connect+json.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body leaves msg at its zero value.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
