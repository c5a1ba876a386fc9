package model

import (
	"testing"

	"github.com/xleven/wxminer/internal/blob"
)

func TestFriendWrap(t *testing.T) {
	remark := blob.EncodeRemark(map[string]string{
		"nickname": "测试好友",
		"alias":    "alias_01",
	})
	raw := &FriendV3{
		UserName:           "friend_01",
		Type:               3,
		DbContactRemark:    remark,
		DbContactHeadImage: []byte(`xx http://wx.qlogo.cn/mmhead/ver_1/abc/0 yy`),
		DbContactProfile:   []byte{0x08, 0x02, 0x10, 0x00},
	}

	c, err := raw.Wrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.NickName != "测试好友" {
		t.Errorf("expected nickname, got %q", c.NickName)
	}
	if c.Alias != "alias_01" {
		t.Errorf("expected alias, got %q", c.Alias)
	}
	if c.HeadImg != "http://wx.qlogo.cn/mmhead/ver_1/abc/0" {
		t.Errorf("unexpected headimg: %q", c.HeadImg)
	}
	if c.Gender != GenderFemale {
		t.Errorf("expected female, got %d", c.Gender)
	}
	if c.Table != ChatTableName("friend_01") {
		t.Errorf("unexpected table: %q", c.Table)
	}
}

func TestFriendWrapEmptyBlobs(t *testing.T) {
	raw := &FriendV3{UserName: "friend_02"}
	c, err := raw.Wrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.HeadImg != "" || c.Gender != GenderUnknown {
		t.Errorf("expected zero values, got headimg=%q gender=%d", c.HeadImg, c.Gender)
	}
}

func TestFriendWrapBadRemark(t *testing.T) {
	// 备注损坏只丢备注字段，联系人本身保留
	raw := &FriendV3{
		UserName:        "friend_03",
		DbContactRemark: []byte{10, 200, 'x'},
	}
	c, err := raw.Wrap()
	if err == nil {
		t.Fatal("expected error for truncated remark")
	}
	if c == nil {
		t.Fatal("expected degraded contact, got nil")
	}
	if c.UserName != "friend_03" || c.NickName != "" || len(c.Remark) != 0 {
		t.Errorf("unexpected degraded contact: %+v", c)
	}
	if c.Table != ChatTableName("friend_03") {
		t.Errorf("unexpected table: %q", c.Table)
	}
}

func TestChatTableName(t *testing.T) {
	// md5("friend_01")
	if got := ChatTableName("friend_01"); got != "Chat_"+MD5Hex("friend_01") {
		t.Errorf("unexpected table name: %q", got)
	}
	if len(ChatTableName("x")) != len("Chat_")+32 {
		t.Error("expected 32 hex chars after prefix")
	}
}

func TestIsChatRoom(t *testing.T) {
	if !IsChatRoom("12345678@chatroom") {
		t.Error("expected chatroom match")
	}
	if IsChatRoom("friend_01") {
		t.Error("expected no match for username")
	}
	if IsChatRoom("1234567@chatroom") {
		t.Error("expected no match for 7-digit id")
	}
	if !IsUserName("wxid_abc123") {
		t.Error("expected username match")
	}
	if IsUserName("ab") {
		t.Error("expected no match for short name")
	}
}
