package core

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"hashbench/pkg/types"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Algorithm 是一个输出 512 位的哈希函数名称
type Algorithm string

const (
	SHA512     Algorithm = "sha512"
	SHA3_512   Algorithm = "sha3-512"
	Blake2b512 Algorithm = "blake2b-512"
)

// DefaultAlgorithm 与 Node 的 createHash("sha512") 保持一致
const DefaultAlgorithm = SHA512

// Algorithms 列出所有支持的算法 (用于 --help 提示)
func Algorithms() []Algorithm {
	return []Algorithm{SHA512, SHA3_512, Blake2b512}
}

// ParseAlgorithm 把配置里的字符串转换为 Algorithm
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case SHA512, SHA3_512, Blake2b512:
		return a, nil
	case "":
		return DefaultAlgorithm, nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", s)
	}
}

func (a Algorithm) String() string { return string(a) }

// New 返回一个新的 hash.Hash 实例
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case SHA512:
		return sha512.New(), nil
	case SHA3_512:
		return sha3.New512(), nil
	case Blake2b512:
		// key 为 nil 时不会返回错误
		return blake2b.New512(nil)
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", a)
	}
}

// Sum 计算 data 的摘要并编码为小写十六进制
func (a Algorithm) Sum(data []byte) (types.Digest, error) {
	switch a {
	case SHA512:
		sum := sha512.Sum512(data)
		return types.Digest(hex.EncodeToString(sum[:])), nil
	case SHA3_512:
		sum := sha3.Sum512(data)
		return types.Digest(hex.EncodeToString(sum[:])), nil
	case Blake2b512:
		sum := blake2b.Sum512(data)
		return types.Digest(hex.EncodeToString(sum[:])), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", a)
	}
}

// HashString 是 Sum 的字符串版本
func (a Algorithm) HashString(s string) (types.Digest, error) {
	return a.Sum([]byte(s))
}
