package miner

import (
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/xleven/wxminer/internal/errors"
	"github.com/xleven/wxminer/internal/model"
)

const sessionDB = "session/session.db"

const querySessions = `
	SELECT IFNULL(UsrName, '')
		,IFNULL(CreateTime, 0)
		,IFNULL(unreadcount, 0)
	FROM SessionAbstract`

// GetSessions 读取最近会话，按最后活跃时间倒序
// 会话库在部分备份中缺失，缺失时返回空结果并告警
func (m *Miner) GetSessions() ([]*model.Session, error) {
	if err := m.requireAccount(); err != nil {
		return nil, err
	}

	db, err := m.dbm.Open(m.prefix + sessionDB)
	if err != nil {
		log.Warnf("session db unavailable: %v", err)
		return []*model.Session{}, nil
	}

	rows, err := db.Query(querySessions)
	if err != nil {
		return nil, errors.QueryFailed(querySessions, err)
	}
	defer rows.Close()

	sessions := make([]*model.Session, 0)
	for rows.Next() {
		var raw model.SessionV3
		if err := rows.Scan(&raw.UsrName, &raw.CreateTime, &raw.UnreadCount); err != nil {
			log.Warnf("skip unreadable session row: %v", err)
			continue
		}
		session := raw.Wrap()
		session.NickName = m.displayName(session.UserName)
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ScanRowFailed(err)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Time.After(sessions[j].Time)
	})
	return sessions, nil
}
