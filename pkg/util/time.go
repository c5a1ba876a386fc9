package util

import (
	"fmt"
	"strings"
	"time"
)

// 支持的日期输入格式，按尝试顺序
var dayLayouts = []string{
	"2006-01-02",
	"20060102",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// DayOf 解析日期输入，时间部分截断到当日零点
func DayOf(str string) (time.Time, error) {
	str = strings.TrimSpace(str)
	for _, layout := range dayLayouts {
		t, err := time.ParseInLocation(layout, str, time.Local)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", str)
}

// StartOfDay 当日零点的时间戳
func StartOfDay(day string) (int64, error) {
	t, err := DayOf(day)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}

// EndOfDay 次日零点的时间戳，day 为空时取今天
// 作为排他上界使用可覆盖 day 当天整日
func EndOfDay(day string) (int64, error) {
	var t time.Time
	if day == "" {
		now := time.Now()
		t = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	} else {
		var err error
		t, err = DayOf(day)
		if err != nil {
			return 0, err
		}
	}
	return t.AddDate(0, 0, 1).Unix(), nil
}
