package blob

import "regexp"

// Find 在二进制 blob 中查找第一个匹配
// 存在捕获组时返回第一个捕获组，否则返回整个匹配；未命中返回 nil
func Find(buf []byte, re *regexp.Regexp) []byte {
	m := re.FindSubmatch(buf)
	if m == nil {
		return nil
	}
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}

// FindString 同 Find，以 string 返回，未命中返回 ""
func FindString(buf []byte, re *regexp.Regexp) string {
	return string(Find(buf, re))
}
