package miner

import (
	"fmt"
	"regexp"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/xleven/wxminer/internal/errors"
	"github.com/xleven/wxminer/internal/model"
	"github.com/xleven/wxminer/pkg/util"
)

const messageDBFormat = "DB/message_%d.sqlite"

// 消息库的 *-first.material 文件中可抠出建表语句里的表名
var messageTableRegexp = regexp.MustCompile(`Chat_[a-z0-9]{32}`)

// listMessageDbs 从 1 开始探测 message_N.sqlite，遇缺号即止
func (m *Miner) listMessageDbs() []string {
	dbs := make([]string, 0)
	for i := 1; ; i++ {
		rel := m.prefix + fmt.Sprintf(messageDBFormat, i)
		if !m.backup.Exists(rel) {
			break
		}
		dbs = append(dbs, rel)
	}
	return dbs
}

// tablesFromSequence 策略一：读 sqlite_sequence
// 该表只在主力设备的备份中出现，缺失按策略未命中处理
func (m *Miner) tablesFromSequence(rel string) []string {
	db, err := m.dbm.Open(rel)
	if err != nil {
		log.Warnf("failed to open %s: %v", rel, err)
		return nil
	}
	rows, err := db.Query(`SELECT name FROM sqlite_sequence`)
	if err != nil {
		log.Warnf("failed to read sequence tables in %s: %v", rel, err)
		return nil
	}
	defer rows.Close()

	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Warnf("skip unreadable sequence row: %v", err)
			continue
		}
		tables = append(tables, name)
	}
	return tables
}

// tablesFromMaterial 策略二：扫 *-first.material 里的 DDL 残片
func (m *Miner) tablesFromMaterial(rel string) []string {
	material := rel + "-first.material"
	data, err := m.backup.ReadFile(material)
	if err != nil {
		log.Warnf("failed to read ddl tables in %s: %v", material, err)
		return nil
	}

	seen := make(map[string]bool)
	tables := make([]string, 0)
	for _, name := range messageTableRegexp.FindAllString(string(data), -1) {
		if seen[name] {
			continue
		}
		seen[name] = true
		tables = append(tables, name)
	}
	sort.Strings(tables)
	return tables
}

// buildMessageTables 合并各消息库的表清单
// 按库编号顺序，先写入者优先，重复表名不覆盖
func (m *Miner) buildMessageTables() map[string]string {
	tables := make(map[string]string)
	for _, rel := range m.messageDbs {
		names := m.tablesFromSequence(rel)
		if len(names) == 0 {
			names = m.tablesFromMaterial(rel)
		}
		for _, name := range names {
			if _, ok := tables[name]; !ok {
				tables[name] = rel
			}
		}
	}
	return tables
}

// buildMessageQuery 在 SQL 层做日期过滤
// 结束日缺省为今天，含当天整日；起始日无法解析时拒绝查询
func buildMessageQuery(table, startDay, endDay string) (string, error) {
	query := fmt.Sprintf(`
		SELECT CreateTime
			,Des
			,ImgStatus
			,MesLocalID
			,Message
			,MesSvrID
			,Status
			,TableVer
			,Type
		FROM %s`, table)

	et, err := util.EndOfDay(endDay)
	if err != nil {
		return "", err
	}
	query += fmt.Sprintf(" WHERE CreateTime < %d", et)

	if startDay != "" {
		st, err := util.StartOfDay(startDay)
		if err != nil {
			return "", err
		}
		query += fmt.Sprintf(" AND CreateTime >= %d", st)
	}

	query += " ORDER BY CreateTime ASC, MesLocalID ASC"
	return query, nil
}

// GetRawMessages 读取原始消息行，不做清洗
// 聊天对象无消息表或日期无法解析时返回空结果并告警
func (m *Miner) GetRawMessages(talker, startDay, endDay string) ([]*model.MessageV3, error) {
	if err := m.requireAccount(); err != nil {
		return nil, err
	}
	if talker == "" {
		return nil, errors.ErrInvalidArg("talker")
	}

	table := model.ChatTableName(talker)
	rel, ok := m.tables[table]
	if !ok {
		log.Warnf("no message table for talker %s", talker)
		return []*model.MessageV3{}, nil
	}

	query, err := buildMessageQuery(table, startDay, endDay)
	if err != nil {
		log.Warnf("wrong date format, check your input: %v", err)
		return []*model.MessageV3{}, nil
	}

	db, err := m.dbm.Open(rel)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(query)
	if err != nil {
		return nil, errors.QueryFailed(query, err)
	}
	defer rows.Close()

	messages := make([]*model.MessageV3, 0)
	for rows.Next() {
		var raw model.MessageV3
		if err := rows.Scan(
			&raw.CreateTime,
			&raw.Des,
			&raw.ImgStatus,
			&raw.MesLocalID,
			&raw.Message,
			&raw.MesSvrID,
			&raw.Status,
			&raw.TableVer,
			&raw.Type,
		); err != nil {
			log.Warnf("skip unreadable message row: %v", err)
			continue
		}
		messages = append(messages, &raw)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ScanRowFailed(err)
	}
	return messages, nil
}

// GetMessages 读取并清洗消息，补全发送人与名称
func (m *Miner) GetMessages(talker, startDay, endDay string) ([]*model.Message, error) {
	raws, err := m.GetRawMessages(talker, startDay, endDay)
	if err != nil {
		return nil, err
	}

	talkerName := m.displayName(talker)
	names := m.senderNames(talker)

	messages := make([]*model.Message, 0, len(raws))
	for _, raw := range raws {
		msg := raw.Wrap(talker, m.account.UserName, true)
		msg.TalkerName = talkerName
		msg.SenderName = names[msg.Sender]
		messages = append(messages, msg)
	}
	return messages, nil
}

// GetChatRoomMessages 群聊查询入口，语义同 GetMessages
// 群名册中的群内昵称优先于好友昵称
func (m *Miner) GetChatRoomMessages(group, startDay, endDay string) ([]*model.Message, error) {
	if group != "" && !model.IsChatRoom(group) {
		return nil, errors.ErrInvalidArg("group")
	}
	return m.GetMessages(group, startDay, endDay)
}

// senderNames 发送人到展示名的映射
// 好友昵称打底，聊天对象与本人补充，群内昵称最后覆盖
func (m *Miner) senderNames(talker string) map[string]string {
	names := make(map[string]string, len(m.friends)+2)
	for user, c := range m.friends {
		names[user] = c.NickName
	}
	if m.account != nil {
		names[m.account.UserName] = m.account.NickName
	}
	if g, ok := m.groups[talker]; ok {
		names[talker] = g.NickName
		for user, display := range g.User2DisplayName() {
			names[user] = display
		}
	}
	return names
}
