package miner

import (
	"regexp"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/xleven/wxminer/internal/blob"
	"github.com/xleven/wxminer/internal/errors"
	"github.com/xleven/wxminer/internal/model"
)

var (
	// 每个登录过的账号都会留下一份 mmsetting.archive.<username>
	mmsettingRegexp = regexp.MustCompile(
		`^Documents/MMappedKV/mmsetting\.archive\.(` + model.UserNamePattern + `)$`)

	// mmsetting 二进制中昵称和头像的偏移标记
	userNicknameRegexp = regexp.MustCompile(`(?s)88[\x00-\x2f]{2}(.*?)\x01`)
	userHeadImgRegexp  = regexp.MustCompile(`(?s)headimgurl.*(https?://.*?/.*?/(?:.*?/)?.*?/[0-9]+)`)
)

// ListAccounts 列出备份中发现的全部账号，字典序
func (m *Miner) ListAccounts() ([]string, error) {
	seen := make(map[string]bool)
	users := make([]string, 0)
	for _, rel := range m.backup.Files() {
		sub := mmsettingRegexp.FindStringSubmatch(rel)
		if sub == nil || seen[sub[1]] {
			continue
		}
		seen[sub[1]] = true
		users = append(users, sub[1])
	}
	sort.Strings(users)
	if len(users) == 0 {
		return nil, errors.NoAccountFound()
	}
	return users, nil
}

// SelectAccount 选定账号并重建索引（消息库、消息表、联系人）
// 多账号时给定账号不存在则回落到第一个，单账号时忽略输入
func (m *Miner) SelectAccount(username string) (string, error) {
	users, err := m.ListAccounts()
	if err != nil {
		return "", err
	}

	if len(users) > 1 {
		if username != "" && !contains(users, username) {
			log.Warnf("account %s not found, selecting %s instead", username, users[0])
			username = users[0]
		}
		if username == "" {
			username = users[0]
		}
	} else {
		if username != "" && username != users[0] {
			log.Info("only one account found, input ignored")
		}
		username = users[0]
	}

	m.account = m.loadProfile(username)
	m.prefix = model.DocumentPrefix(username)

	m.messageDbs = m.listMessageDbs()
	m.tables = m.buildMessageTables()

	if err := m.loadContacts(); err != nil {
		return "", err
	}

	return username, nil
}

// Account 当前选定的账号，未选定时为 nil
func (m *Miner) Account() *model.Account {
	return m.account
}

// loadProfile 从 mmsetting 二进制中解析昵称与头像
// 解析失败仅降级，不影响账号选定
func (m *Miner) loadProfile(username string) *model.Account {
	account := &model.Account{
		UserName: username,
		NickName: model.DefaultNickName,
	}

	rel := "Documents/MMappedKV/mmsetting.archive." + username
	data, err := m.backup.ReadFile(rel)
	if err != nil {
		log.Warnf("failed to read %s: %v", rel, err)
		return account
	}

	if name := blob.FindString(data, userNicknameRegexp); name != "" {
		account.NickName = name
	} else {
		log.Warn("failed to parse nickname, using default")
	}
	account.HeadImg = blob.FindString(data, userHeadImgRegexp)
	return account
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
