package model

import "regexp"

// 微信 ID 与群 ID 的字面量约定，所有解析共用
const (
	UserNamePattern = "[0-9A-Za-z_-]{6,20}"
	ChatRoomPattern = "[0-9]{8,12}@chatroom"
)

var (
	userNameRegexp = regexp.MustCompile("^" + UserNamePattern + "$")
	chatRoomRegexp = regexp.MustCompile("^" + ChatRoomPattern + "$")
)

// IsUserName 判断是否为合法微信 ID
func IsUserName(s string) bool {
	return userNameRegexp.MatchString(s)
}

// IsChatRoom 判断是否为群 ID
func IsChatRoom(s string) bool {
	return chatRoomRegexp.MatchString(s)
}
