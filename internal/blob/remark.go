package blob

import (
	"sort"
	"strconv"

	"github.com/xleven/wxminer/internal/errors"
)

// 备注字段 blob 为 (tag, length, payload) 三元组序列
// tag 枚举来自对 dbContactRemark 的逆向，可能不完整，
// 未知 tag 以十进制数字键原样保留
var remarkTags = map[byte]string{
	10: "nickname",
	18: "id_new",
	26: "alias",
	34: "alias_pinyin",
	42: "alias_PY",
	50: "nickname_pinyin",
	58: "description",
	66: "tag",
}

// DecodeRemark 解析 dbContactRemark 二进制字段
// length 越界（含缺失 length 字节）返回 TruncatedRemark
func DecodeRemark(buf []byte) (map[string]string, error) {
	fields := make(map[string]string)
	cursor := 0
	for cursor < len(buf) {
		tag := buf[cursor]
		if cursor+2 > len(buf) {
			return nil, errors.TruncatedRemark(cursor, len(buf))
		}
		length := int(buf[cursor+1])
		cursor += 2
		if cursor+length > len(buf) {
			return nil, errors.TruncatedRemark(cursor, len(buf))
		}
		name, ok := remarkTags[tag]
		if !ok {
			name = strconv.Itoa(int(tag))
		}
		fields[name] = string(buf[cursor : cursor+length])
		cursor += length
	}
	return fields, nil
}

// EncodeRemark 将字段表编码回 (tag, length, payload) 序列
// 已知字段按 tag 升序写出，未知数字键随后，保证输出确定
// 主要服务于测试中的 round-trip 校验
func EncodeRemark(fields map[string]string) []byte {
	name2tag := make(map[string]byte, len(remarkTags))
	for tag, name := range remarkTags {
		name2tag[name] = tag
	}

	tags := make([]int, 0, len(fields))
	byTag := make(map[int]string, len(fields))
	for name, value := range fields {
		tag, ok := name2tag[name]
		if !ok {
			n, err := strconv.Atoi(name)
			if err != nil || n < 0 || n > 255 {
				continue
			}
			tag = byte(n)
		}
		tags = append(tags, int(tag))
		byTag[int(tag)] = value
	}
	sort.Ints(tags)

	buf := make([]byte, 0, len(fields)*8)
	for _, tag := range tags {
		value := byTag[tag]
		if len(value) > 255 {
			value = value[:255]
		}
		buf = append(buf, byte(tag), byte(len(value)))
		buf = append(buf, value...)
	}
	return buf
}
