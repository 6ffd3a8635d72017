// Package browsev1 は browse.v1.TransactionService のワイヤ定義です。
// メッセージは JSON コーデックでエンコードされ、gRPC の content-subtype "json" で送受信されます。
package browsev1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName は gRPC の content-subtype として使用するコーデック名です。
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("browsev1: cannot marshal nil message")
	}
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}
