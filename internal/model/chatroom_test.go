package model

import (
	"testing"

	"github.com/xleven/wxminer/internal/blob"
)

func groupBlob(roomXML string) []byte {
	// founder 标记 + 名册 XML，模拟 dbContactChatRoom 布局
	buf := []byte{0x0a, 0x05, 'h', 'e', 'l', 'l', 'o'}
	buf = append(buf, 0x12, 0x09)
	buf = append(buf, []byte("owner_001")...)
	buf = append(buf, 0x00)
	buf = append(buf, []byte(roomXML)...)
	return buf
}

func TestGroupWrap(t *testing.T) {
	roomXML := `<RoomData>` +
		`<Member UserName="member_01"><DisplayName>小张</DisplayName></Member>` +
		`<Member UserName="member_02"></Member>` +
		`</RoomData>`
	raw := &GroupV3{
		UserName:          "12345678@chatroom",
		DbContactRemark:   blob.EncodeRemark(map[string]string{"nickname": "工作群"}),
		DbContactChatRoom: groupBlob(roomXML),
	}

	c, err := raw.Wrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.NickName != "工作群" {
		t.Errorf("expected nickname, got %q", c.NickName)
	}
	if c.Founder != "owner_001" {
		t.Errorf("expected founder owner_001, got %q", c.Founder)
	}
	if len(c.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(c.Members))
	}
	if c.Members[0].UserName != "member_01" || c.Members[0].DisplayName != "小张" {
		t.Errorf("unexpected first member: %+v", c.Members[0])
	}

	names := c.User2DisplayName()
	if names["member_01"] != "小张" {
		t.Errorf("expected display name mapping, got %v", names)
	}
	if _, ok := names["member_02"]; ok {
		t.Error("expected member without display name excluded")
	}
}

func TestGroupWrapMemberAsChildElement(t *testing.T) {
	// 旧版本名册以子元素携带 UserName
	roomXML := `<RoomData><Member><UserName>member_03</UserName></Member></RoomData>`
	raw := &GroupV3{
		UserName:          "23456789@chatroom",
		DbContactChatRoom: groupBlob(roomXML),
	}
	c, err := raw.Wrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Members) != 1 || c.Members[0].UserName != "member_03" {
		t.Errorf("unexpected members: %+v", c.Members)
	}
}

func TestGroupWrapBadRemark(t *testing.T) {
	// 备注损坏只丢群名，名册照常解析
	roomXML := `<RoomData><Member UserName="member_04"/></RoomData>`
	raw := &GroupV3{
		UserName:          "45678901@chatroom",
		DbContactRemark:   []byte{10, 200, 'x'},
		DbContactChatRoom: groupBlob(roomXML),
	}
	c, err := raw.Wrap()
	if err == nil {
		t.Fatal("expected error for truncated remark")
	}
	if c == nil {
		t.Fatal("expected degraded group, got nil")
	}
	if c.NickName != "" || len(c.Remark) != 0 {
		t.Errorf("unexpected degraded group: %+v", c)
	}
	if len(c.Members) != 1 || c.Members[0].UserName != "member_04" {
		t.Errorf("unexpected members: %+v", c.Members)
	}
}

func TestGroupWrapBrokenRoster(t *testing.T) {
	raw := &GroupV3{
		UserName:          "34567890@chatroom",
		DbContactChatRoom: []byte("no roster here"),
	}
	c, err := raw.Wrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Members) != 0 {
		t.Errorf("expected no members, got %+v", c.Members)
	}
}
