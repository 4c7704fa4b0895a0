package corpus

import (
	"encoding/json"
	"fmt"
	"strings"

	"hashbench/pkg/types"

	"github.com/fxamacker/cbor/v2"
)

// DefaultName 是 includesTest 读取的语料文件名
const DefaultName = "hundredThousandHashes.json"

// Format 是语料的序列化格式
// 两种格式的内容都是同一个扁平的字符串数组
type Format string

const (
	JSON Format = "json"
	CBOR Format = "cbor"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, CBOR:
		return f, nil
	case "":
		return JSON, nil
	default:
		return "", fmt.Errorf("unsupported corpus format: %s", s)
	}
}

func (f Format) String() string { return string(f) }

// Label 用于计时输出，例如 "Time to load JSON"
func (f Format) Label() string { return strings.ToUpper(string(f)) }

// CBOR 编码选项：确定性编码，禁止不定长
var encOptions = cbor.EncOptions{
	Sort:        cbor.SortCanonical,
	IndefLength: cbor.IndefLengthForbidden,
}

var em, _ = encOptions.EncMode()

// 语料可能有上百万条，默认的 MaxArrayElements (131072) 不够用
var decOptions = cbor.DecOptions{
	MaxArrayElements: 1 << 26,
	MaxNestedLevels:  4,
	IndefLength:      cbor.IndefLengthForbidden,
}

var dm, _ = decOptions.DecMode()

// Encode 把摘要集合序列化为指定格式
func Encode(digests []types.Digest, f Format) ([]byte, error) {
	if digests == nil {
		// 保证输出是 [] 而不是 null
		digests = []types.Digest{}
	}

	switch f {
	case JSON:
		data, err := json.Marshal(digests)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal corpus: %w", err)
		}
		return data, nil
	case CBOR:
		data, err := em.Marshal(digests)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal corpus: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported corpus format: %s", f)
	}
}

// Decode 反序列化整个语料 (一次性读入，不做流式解析)
// 不校验每个元素是否是合法摘要：结构相同的任意字符串数组都可以
func Decode(data []byte, f Format) ([]types.Digest, error) {
	var digests []types.Digest

	switch f {
	case JSON:
		if err := json.Unmarshal(data, &digests); err != nil {
			return nil, fmt.Errorf("corrupted corpus: %w", err)
		}
	case CBOR:
		if err := dm.Unmarshal(data, &digests); err != nil {
			return nil, fmt.Errorf("corrupted corpus: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported corpus format: %s", f)
	}

	return digests, nil
}
