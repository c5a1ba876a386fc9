package model

import (
	"regexp"

	"github.com/xleven/wxminer/internal/blob"
)

var (
	// 群创建者藏在 dbContactChatRoom 的 \x12 标记之后
	groupFounderRegexp = regexp.MustCompile(`(?s)\x12.(` + UserNamePattern + `)`)

	// 成员名册为嵌入的 RoomData XML 片段
	groupRoomDataRegexp = regexp.MustCompile(`(?s)<RoomData>.+</RoomData>`)
)

type ChatRoom struct {
	UserName string            `json:"userName"` // 群 ID
	Type     int               `json:"type"`     // 联系人类型位
	NickName string            `json:"nickName"` // 群名称，来自备注 TLV
	Remark   map[string]string `json:"remark"`   // 备注 TLV 全量字段
	Founder  string            `json:"founder"`  // 创建者微信 ID
	Members  []ChatRoomMember  `json:"members"`  // 成员名册
	Table    string            `json:"table"`    // 对应消息表名
}

type ChatRoomMember struct {
	UserName    string `json:"userName"`
	DisplayName string `json:"displayName"` // 群内昵称，可为空
}

// CREATE TABLE Friend(... dbContactChatRoom BLOB ...)
// 群聊复用 Friend 表，以 @chatroom 后缀区分
type GroupV3 struct {
	UserName          string `json:"userName"`
	Type              int    `json:"type"`
	DbContactRemark   []byte `json:"dbContactRemark"`
	DbContactChatRoom []byte `json:"dbContactChatRoom"`
}

// roomData 对应 RoomData XML
// UserName 在不同版本中可能是属性或子元素，两者都认
type roomData struct {
	Members []roomMember `xml:"Member"`
}

type roomMember struct {
	UserNameAttr string `xml:"UserName,attr"`
	UserNameElem string `xml:"UserName"`
	DisplayName  string `xml:"DisplayName"`
}

// Wrap 解析原始行为群聊
// 备注 TLV 损坏时以空备注降级，群本身仍然返回，错误供调用方告警
// 名册 XML 损坏时成员列表为空，不视为错误
func (g *GroupV3) Wrap() (*ChatRoom, error) {
	remark, err := blob.DecodeRemark(g.DbContactRemark)
	if err != nil {
		remark = map[string]string{}
	}

	return &ChatRoom{
		UserName: g.UserName,
		Type:     g.Type,
		NickName: remark["nickname"],
		Remark:   remark,
		Founder:  blob.FindString(g.DbContactChatRoom, groupFounderRegexp),
		Members:  parseRoomData(blob.Find(g.DbContactChatRoom, groupRoomDataRegexp)),
		Table:    ChatTableName(g.UserName),
	}, err
}

func parseRoomData(xml []byte) []ChatRoomMember {
	if len(xml) == 0 {
		return nil
	}
	var data roomData
	if err := blob.Unmarshal(xml, &data); err != nil && len(data.Members) == 0 {
		return nil
	}
	members := make([]ChatRoomMember, 0, len(data.Members))
	for _, m := range data.Members {
		username := m.UserNameAttr
		if username == "" {
			username = m.UserNameElem
		}
		if username == "" {
			continue
		}
		members = append(members, ChatRoomMember{
			UserName:    username,
			DisplayName: m.DisplayName,
		})
	}
	return members
}

// User2DisplayName 成员到群内昵称的映射，仅包含有昵称的成员
func (c *ChatRoom) User2DisplayName() map[string]string {
	m := make(map[string]string, len(c.Members))
	for _, member := range c.Members {
		if member.DisplayName != "" {
			m[member.UserName] = member.DisplayName
		}
	}
	return m
}

func (c *ChatRoom) DisplayName() string {
	if c.NickName != "" {
		return c.NickName
	}
	return c.UserName
}
