package util

import "strings"

// Str2List 逗号分隔的输入转列表，空段丢弃
func Str2List(str string, sep string) []string {
	list := make([]string, 0)
	for _, s := range strings.Split(str, sep) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		list = append(list, s)
	}
	return list
}
