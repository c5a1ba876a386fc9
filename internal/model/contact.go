package model

import (
	"regexp"

	"github.com/xleven/wxminer/internal/blob"
)

var (
	// 头像 URL 形如 http(s)://host/path[/path]/path/数字
	contactHeadImgRegexp = regexp.MustCompile(`(?s)https?://.+?/.+?/(?:.+?/)?.+?/[0-9]+`)

	// dbContactProfile 中性别为 \x08 后跟单字节枚举
	friendGenderRegexp = regexp.MustCompile(`(?s)\x08([\x00-\x02])`)
)

// 性别枚举，来自 dbContactProfile
const (
	GenderUnknown = 0
	GenderMale    = 1
	GenderFemale  = 2
)

type Contact struct {
	UserName string            `json:"userName"` // 微信 ID
	Type     int               `json:"type"`     // 联系人类型位
	NickName string            `json:"nickName"` // 昵称，来自备注 TLV
	Alias    string            `json:"alias"`    // 微信号，来自备注 TLV
	Remark   map[string]string `json:"remark"`   // 备注 TLV 全量字段，未知 tag 以数字键保留
	HeadImg  string            `json:"headImg"`  // 头像 URL
	Gender   int               `json:"gender"`   // 性别
	Table    string            `json:"table"`    // 对应消息表名
}

// CREATE TABLE Friend(
// userName TEXT PRIMARY KEY,
// type INTEGER,
// certificationFlag INTEGER,
// imgStatus INTEGER,
// dbContactRemark BLOB,
// dbContactHeadImage BLOB,
// dbContactProfile BLOB,
// dbContactSocial BLOB,
// dbContactChatRoom BLOB,
// dbContactOther BLOB,
// dbContactBrand BLOB,
// dbContactEncryptSecret BLOB,
// openIMInfo BLOB
// )
type FriendV3 struct {
	UserName           string `json:"userName"`
	Type               int    `json:"type"`
	DbContactRemark    []byte `json:"dbContactRemark"`
	DbContactHeadImage []byte `json:"dbContactHeadImage"`
	DbContactProfile   []byte `json:"dbContactProfile"`
}

// Wrap 解析原始行为联系人
// 备注 TLV 损坏时以空备注降级，联系人本身仍然返回，错误供调用方告警
// 头像/性别解析失败仅留空
func (f *FriendV3) Wrap() (*Contact, error) {
	remark, err := blob.DecodeRemark(f.DbContactRemark)
	if err != nil {
		remark = map[string]string{}
	}

	gender := GenderUnknown
	if g := blob.Find(f.DbContactProfile, friendGenderRegexp); len(g) == 1 {
		gender = int(g[0])
	}

	return &Contact{
		UserName: f.UserName,
		Type:     f.Type,
		NickName: remark["nickname"],
		Alias:    remark["alias"],
		Remark:   remark,
		HeadImg:  blob.FindString(f.DbContactHeadImage, contactHeadImgRegexp),
		Gender:   gender,
		Table:    ChatTableName(f.UserName),
	}, err
}

func (c *Contact) DisplayName() string {
	if c.NickName != "" {
		return c.NickName
	}
	return c.UserName
}
