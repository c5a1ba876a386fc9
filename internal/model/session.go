package model

import (
	"strings"
	"time"
)

type Session struct {
	UserName    string    `json:"userName"`    // 聊天对象
	NickName    string    `json:"nickName"`    // 聊天对象名称，联系人富化得到
	Time        time.Time `json:"time"`        // 最后活跃时间
	UnreadCount int       `json:"unreadCount"` // 未读数
}

// CREATE TABLE SessionAbstract(
// UsrName TEXT PRIMARY KEY,
// CreateTime INTEGER,
// unreadcount INTEGER,
// UnReadInvite INTEGER,
// ConStrRes1 TEXT,
// ConBlobRes1 BLOB
// )
type SessionV3 struct {
	UsrName     string `json:"UsrName"`
	CreateTime  int64  `json:"CreateTime"`
	UnreadCount int    `json:"unreadcount"`
}

func (s *SessionV3) Wrap() *Session {
	return &Session{
		UserName:    s.UsrName,
		Time:        time.Unix(s.CreateTime, 0),
		UnreadCount: s.UnreadCount,
	}
}

func (s *Session) PlainText() string {
	buf := strings.Builder{}
	if s.NickName != "" {
		buf.WriteString(s.NickName)
		buf.WriteString("(")
		buf.WriteString(s.UserName)
		buf.WriteString(")")
	} else {
		buf.WriteString(s.UserName)
	}
	buf.WriteString(" ")
	buf.WriteString(s.Time.Format("2006-01-02 15:04:05"))
	buf.WriteString("\n")
	return buf.String()
}
