package model

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// DefaultNickName 昵称解析失败时的兜底值
const DefaultNickName = "微信用户"

// Account 备份中的一个微信账号
// 由 mmsetting.archive.<username> 发现并解析得到
type Account struct {
	UserName string `json:"userName"` // 微信 ID
	NickName string `json:"nickName"` // 昵称
	HeadImg  string `json:"headImg"`  // 头像 URL
}

func (a *Account) PlainText() string {
	return fmt.Sprintf("%s(%s)", a.NickName, a.UserName)
}

// MD5Hex 账号及聊天对象的目录/表名均以 username 的 md5 定位
func MD5Hex(username string) string {
	sum := md5.Sum([]byte(username))
	return hex.EncodeToString(sum[:])
}

// ChatTableName 聊天对象对应的消息表名
func ChatTableName(talker string) string {
	return "Chat_" + MD5Hex(talker)
}

// DocumentPrefix 账号文件在备份内的相对路径前缀
func DocumentPrefix(username string) string {
	return "Documents/" + MD5Hex(username) + "/"
}
