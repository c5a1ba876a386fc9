package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MessageTypeText 文本
	MessageTypeText = 1

	// MessageTypeImage 图片
	MessageTypeImage = 3

	// MessageTypeVoice 语音
	MessageTypeVoice = 34

	// MessageTypeCard 名片
	MessageTypeCard = 42

	// MessageTypeVideo 视频
	MessageTypeVideo = 43

	// MessageTypeEmoji 表情
	MessageTypeEmoji = 47

	// MessageTypeLocation 位置
	MessageTypeLocation = 48

	// MessageTypeApp 应用消息，实际类型以 XML type 字段为准
	MessageTypeApp = 49

	// MessageTypeSystem 系统
	MessageTypeSystem = 10000

	// MessageTypeSysMsg 系统 XML
	MessageTypeSysMsg = 10002
)

// 媒体消息占位文本
const (
	PlaceholderImage = "[图片]"
	PlaceholderVoice = "[语音]"
	PlaceholderVideo = "[视频]"
	PlaceholderEmoji = "[表情]"
)

type Message struct {
	Seq        int64     `json:"seq"`        // 消息本地序号
	SvrID      int64     `json:"svrId"`      // 服务端消息 ID
	Time       time.Time `json:"time"`       // 消息创建时间
	Talker     string    `json:"talker"`     // 聊天对象，微信 ID or 群 ID
	TalkerName string    `json:"talkerName"` // 聊天对象名称
	IsChatRoom bool      `json:"isChatRoom"` // 是否为群聊消息
	Sender     string    `json:"sender"`     // 发送人，微信 ID
	SenderName string    `json:"senderName"` // 发送人名称
	IsSelf     bool      `json:"isSelf"`     // 是否为自己发送的消息
	Type       int64     `json:"type"`       // 消息类型，应用消息已按 XML 细分
	Content    string    `json:"content"`    // 消息内容，媒体消息为占位文本
}

func (m *Message) PlainText(showChatRoom bool, timeFormat string) string {

	if timeFormat == "" {
		timeFormat = "01-02 15:04:05"
	}

	buf := strings.Builder{}

	sender := m.Sender
	if m.IsSelf {
		sender = "我"
	}
	if m.SenderName != "" {
		buf.WriteString(m.SenderName)
		buf.WriteString("(")
		buf.WriteString(sender)
		buf.WriteString(")")
	} else {
		buf.WriteString(sender)
	}
	buf.WriteString(" ")

	if m.IsChatRoom && showChatRoom {
		buf.WriteString("[")
		if m.TalkerName != "" {
			buf.WriteString(m.TalkerName)
			buf.WriteString("(")
			buf.WriteString(m.Talker)
			buf.WriteString(")")
		} else {
			buf.WriteString(m.Talker)
		}
		buf.WriteString("] ")
	}

	buf.WriteString(m.Time.Format(timeFormat))
	buf.WriteString("\n")

	buf.WriteString(m.PlainTextContent())
	buf.WriteString("\n")

	return buf.String()
}

func (m *Message) PlainTextContent() string {
	if m.Content != "" {
		return m.Content
	}
	switch m.Type {
	case MessageTypeImage:
		return PlaceholderImage
	case MessageTypeVoice:
		return PlaceholderVoice
	case MessageTypeCard:
		return "[名片]"
	case MessageTypeVideo:
		return PlaceholderVideo
	case MessageTypeEmoji:
		return PlaceholderEmoji
	case MessageTypeLocation:
		return "[位置]"
	default:
		return fmt.Sprintf("[类型 %d]", m.Type)
	}
}

func (m *Message) CSV() []string {
	return []string{
		m.Time.Format("2006-01-02 15:04:05"),
		m.SenderName,
		m.Sender,
		m.TalkerName,
		m.Talker,
		m.PlainTextContent(),
	}
}
