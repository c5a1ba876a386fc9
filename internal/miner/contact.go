package miner

import (
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/xleven/wxminer/internal/errors"
	"github.com/xleven/wxminer/internal/model"
)

const contactDB = "DB/WCDB_Contact.sqlite"

// 好友取 type 奇数位且有加密秘钥的行，群聊以 @chatroom 后缀区分
const (
	queryFriends = `
		SELECT userName
			,type
			,IFNULL(dbContactRemark, '')
			,IFNULL(dbContactHeadImage, '')
			,IFNULL(dbContactProfile, '')
		FROM Friend
		WHERE type % 2 = 1
			AND dbContactEncryptSecret NOT NULL`

	queryGroups = `
		SELECT userName
			,type
			,IFNULL(dbContactRemark, '')
			,IFNULL(dbContactChatRoom, '')
		FROM Friend
		WHERE userName LIKE '%@chatroom'`
)

// loadContacts 读取联系人库并解析好友与群聊
// 库不可用为结构性失败，单行扫描失败仅告警跳过，
// 备注损坏的行以空备注保留
func (m *Miner) loadContacts() error {
	db, err := m.dbm.Open(m.prefix + contactDB)
	if err != nil {
		return err
	}

	m.friends = make(map[string]*model.Contact)
	m.friendList = make([]*model.Contact, 0)
	m.groups = make(map[string]*model.ChatRoom)
	m.groupList = make([]*model.ChatRoom, 0)

	rows, err := db.Query(queryFriends)
	if err != nil {
		return errors.QueryFailed(queryFriends, err)
	}
	for rows.Next() {
		var raw model.FriendV3
		if err := rows.Scan(
			&raw.UserName,
			&raw.Type,
			&raw.DbContactRemark,
			&raw.DbContactHeadImage,
			&raw.DbContactProfile,
		); err != nil {
			log.Warnf("skip unreadable friend row: %v", err)
			continue
		}
		contact, err := raw.Wrap()
		if err != nil {
			log.Warnf("friend %s remark unreadable, keeping row: %v", raw.UserName, err)
		}
		m.friends[contact.UserName] = contact
		m.friendList = append(m.friendList, contact)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return errors.QueryFailed(queryFriends, err)
	}

	rows, err = db.Query(queryGroups)
	if err != nil {
		return errors.QueryFailed(queryGroups, err)
	}
	for rows.Next() {
		var raw model.GroupV3
		if err := rows.Scan(
			&raw.UserName,
			&raw.Type,
			&raw.DbContactRemark,
			&raw.DbContactChatRoom,
		); err != nil {
			log.Warnf("skip unreadable group row: %v", err)
			continue
		}
		group, err := raw.Wrap()
		if err != nil {
			log.Warnf("group %s remark unreadable, keeping row: %v", raw.UserName, err)
		}
		m.groups[group.UserName] = group
		m.groupList = append(m.groupList, group)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return errors.QueryFailed(queryGroups, err)
	}

	sort.Slice(m.friendList, func(i, j int) bool {
		return m.friendList[i].UserName < m.friendList[j].UserName
	})
	sort.Slice(m.groupList, func(i, j int) bool {
		return m.groupList[i].UserName < m.groupList[j].UserName
	})
	return nil
}

// ListContact 列出好友，key 为空时返回全部
// key 匹配微信 ID、昵称或微信号
func (m *Miner) ListContact(key string) ([]*model.Contact, error) {
	if err := m.requireAccount(); err != nil {
		return nil, err
	}
	if key == "" {
		return m.friendList, nil
	}
	list := make([]*model.Contact, 0)
	for _, c := range m.friendList {
		if c.UserName == key || c.NickName == key || c.Alias == key ||
			strings.Contains(c.NickName, key) {
			list = append(list, c)
		}
	}
	return list, nil
}

// GetContact 精确查找好友
func (m *Miner) GetContact(username string) (*model.Contact, error) {
	if err := m.requireAccount(); err != nil {
		return nil, err
	}
	c, ok := m.friends[username]
	if !ok {
		return nil, errors.ContactNotFound(username)
	}
	return c, nil
}

// ListChatRoom 列出群聊，key 为空时返回全部
func (m *Miner) ListChatRoom(key string) ([]*model.ChatRoom, error) {
	if err := m.requireAccount(); err != nil {
		return nil, err
	}
	if key == "" {
		return m.groupList, nil
	}
	list := make([]*model.ChatRoom, 0)
	for _, g := range m.groupList {
		if g.UserName == key || g.NickName == key ||
			strings.Contains(g.NickName, key) {
			list = append(list, g)
		}
	}
	return list, nil
}

// GetChatRoom 精确查找群聊
func (m *Miner) GetChatRoom(username string) (*model.ChatRoom, error) {
	if err := m.requireAccount(); err != nil {
		return nil, err
	}
	g, ok := m.groups[username]
	if !ok {
		return nil, errors.ChatRoomNotFound(username)
	}
	return g, nil
}

// displayName 聊天对象的展示名
func (m *Miner) displayName(talker string) string {
	if m.account != nil && talker == m.account.UserName {
		return m.account.NickName
	}
	if c, ok := m.friends[talker]; ok {
		return c.NickName
	}
	if g, ok := m.groups[talker]; ok {
		return g.NickName
	}
	return ""
}
