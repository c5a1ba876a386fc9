package blob

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// XMLValue 尽力从 XML 片段中取值：返回第一个名为 path 的元素的
// attr 属性，attr 为空时返回其文本内容
// XML 损坏、截断或目标不存在时返回 ""，绝不报错
func XMLValue(data []byte, path string, attr string) string {
	d := newLenientDecoder(data)

	for {
		tok, err := d.Token()
		if err != nil {
			return ""
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != path {
			continue
		}
		if attr != "" {
			for _, a := range start.Attr {
				if a.Name.Local == attr {
					return a.Value
				}
			}
			return ""
		}
		return elementText(d, start.Name.Local)
	}
}

// elementText 读取当前元素的文本内容，直到对应的结束标签
// 中途解析失败时返回已读到的部分
func elementText(d *xml.Decoder, name string) string {
	var buf strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			if depth == 1 {
				buf.Write(t)
			}
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return strings.TrimSpace(buf.String())
}

// Unmarshal 宽松模式反序列化，用于嵌入的 XML 片段
func Unmarshal(data []byte, v interface{}) error {
	return newLenientDecoder(data).Decode(v)
}

func newLenientDecoder(data []byte) *xml.Decoder {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose
	d.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return d
}
