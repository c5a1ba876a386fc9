package miner

import (
	"github.com/rs/zerolog/log"

	"github.com/xleven/wxminer/internal/backup"
	"github.com/xleven/wxminer/internal/errors"
	"github.com/xleven/wxminer/internal/model"
)

// Miner 面向一份备份中单个账号的聊天数据读取器
// SelectAccount 之后才能查询消息、联系人与会话
type Miner struct {
	backup *backup.Backup
	dbm    *dbManager

	account    *model.Account
	prefix     string            // Documents/<md5(username)>/
	messageDbs []string          // 消息库相对路径，按编号排列
	tables     map[string]string // 消息表名 -> 所在消息库相对路径

	friends    map[string]*model.Contact
	friendList []*model.Contact
	groups     map[string]*model.ChatRoom
	groupList  []*model.ChatRoom
}

// New 打开备份并建立读取器，username 为空时自动选择账号
func New(backupPath, udid, username string) (*Miner, error) {
	b, err := backup.New(backupPath, udid)
	if err != nil {
		return nil, err
	}

	m := &Miner{
		backup: b,
		dbm:    newDBManager(b),
	}
	if _, err := m.SelectAccount(username); err != nil {
		m.Close()
		return nil, err
	}

	log.Info().
		Str("account", m.account.UserName).
		Int("friends", len(m.friendList)).
		Int("groups", len(m.groupList)).
		Int("tables", len(m.tables)).
		Msg("miner ready")
	return m, nil
}

// Backup 暴露底层备份索引，供设备信息展示
func (m *Miner) Backup() *backup.Backup {
	return m.backup
}

func (m *Miner) Close() error {
	return m.dbm.Close()
}

// requireAccount 查询入口的统一前置检查
func (m *Miner) requireAccount() error {
	if m.account == nil {
		return errors.AccountNotSelected()
	}
	return nil
}
