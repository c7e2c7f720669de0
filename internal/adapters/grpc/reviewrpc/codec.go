package reviewrpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName は content-subtype として送られるコーデック名です。
const CodecName = "json"

// Codec は ReviewService のメッセージを JSON で符号化します。
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(Codec{})
}
