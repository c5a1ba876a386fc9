package model

import (
	"regexp"
	"strconv"
	"time"

	"github.com/xleven/wxminer/internal/blob"
)

// 群聊消息体以 "sender:\n" 前缀携带发送人
var messageSplitRegexp = regexp.MustCompile(
	`(?s)^(?:(` + UserNamePattern + `|` + ChatRoomPattern + `):\n)?(.+)$`)

// CREATE TABLE Chat_<md5(talker)>(
// TableVer INTEGER DEFAULT 1,
// MesLocalID INTEGER PRIMARY KEY AUTOINCREMENT,
// MesSvrID INTEGER,
// CreateTime INTEGER,
// Message TEXT,
// Status INTEGER,
// ImgStatus INTEGER,
// Type INTEGER,
// Des INTEGER
// )
type MessageV3 struct {
	TableVer   int    `json:"TableVer"`
	MesLocalID int64  `json:"MesLocalID"`
	MesSvrID   int64  `json:"MesSvrID"`
	CreateTime int64  `json:"CreateTime"`
	Message    string `json:"Message"`
	Status     int    `json:"Status"`
	ImgStatus  int    `json:"ImgStatus"`
	Type       int64  `json:"Type"`
	Des        int    `json:"Des"` // 0 为自己发送
}

// Wrap 将原始行清洗为规范消息
// 发送人解析次序：自己的消息（Des==0 压过一切）、群前缀拆分、
// 视频/应用消息 XML、最后私聊兜底为聊天对象本身
func (m *MessageV3) Wrap(talker, account string, replaceMedia bool) *Message {
	msg := &Message{
		Seq:        m.MesLocalID,
		SvrID:      m.MesSvrID,
		Time:       time.Unix(m.CreateTime, 0),
		Talker:     talker,
		IsChatRoom: IsChatRoom(talker),
		IsSelf:     m.Des == 0,
		Type:       m.Type,
	}

	body := m.Message
	sender := ""
	senderKnown := false

	if msg.IsChatRoom && m.Des != 0 {
		if sub := messageSplitRegexp.FindStringSubmatch(body); sub != nil {
			if sub[1] != "" {
				sender = sub[1]
				senderKnown = true
			}
			body = sub[2]
		}
	}

	if m.Des == 0 {
		sender = account
		senderKnown = true
	}

	switch m.Type {
	case MessageTypeVideo:
		if m.Des != 0 {
			sender = blob.XMLValue([]byte(body), "videomsg", "fromusername")
			senderKnown = true
		}
	case MessageTypeApp:
		raw := []byte(body)
		if m.Des != 0 {
			if s := blob.XMLValue(raw, "fromusername", ""); s != "" {
				sender = s
			} else {
				sender = blob.XMLValue(raw, "fromUser", "")
			}
			senderKnown = true
		}
		msg.Content = blob.XMLValue(raw, "title", "")
		if t, err := strconv.ParseInt(blob.XMLValue(raw, "type", ""), 10, 64); err == nil {
			msg.Type = t
		}
	}

	if !senderKnown && m.Type < MessageTypeSystem {
		sender = talker
	}
	msg.Sender = sender

	if m.Type == MessageTypeText {
		msg.Content = body
	}
	if replaceMedia {
		switch m.Type {
		case MessageTypeImage:
			msg.Content = PlaceholderImage
		case MessageTypeVoice:
			msg.Content = PlaceholderVoice
		case MessageTypeVideo:
			msg.Content = PlaceholderVideo
		case MessageTypeEmoji:
			msg.Content = PlaceholderEmoji
		}
	}

	return msg
}
