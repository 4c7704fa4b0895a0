// pkg/types/digest.go
package types

// DigestLen 是 512 位摘要的十六进制长度
const DigestLen = 128

// Digest 代表一个 512 位哈希的小写十六进制文本
// 这是一个“值对象”，比较时只做精确的字符串比较。
type Digest string

func (d Digest) String() string { return string(d) }

// IsValid 检查长度以及字符集 (只允许 0-9a-f)
func (d Digest) IsValid() bool {
	if len(d) != DigestLen {
		return false
	}
	for i := 0; i < len(d); i++ {
		c := d[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
